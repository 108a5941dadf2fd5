package booking

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Regional mobile numbering convention: 10 digits, leading 6-9.
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

	// Minimal local@domain.tld shape.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Details are the patient fields collected in the wizard's second step.
type Details struct {
	Name   string `json:"patient_name" validate:"required"`
	Email  string `json:"patient_email" validate:"required,patient_email"`
	Phone  string `json:"patient_phone" validate:"required,patient_phone"`
	Reason string `json:"reason"`
}

// Validator runs the pure, side-effect-free field checks gating the
// details -> payment transition.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("patient_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("patient_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate reports the first user-facing failure, checked in the same order
// the original flow did: required fields, then phone format, then email
// format. A nil return means the wizard may advance.
func (v *Validator) Validate(d Details) error {
	err := v.validate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrFillRequired
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrFillRequired
		}
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "patient_phone" {
			return ErrInvalidPhone
		}
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "patient_email" {
			return ErrInvalidEmail
		}
	}
	return ErrFillRequired
}
