package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDetails() Details {
	return Details{
		Name:  "Test Patient",
		Email: "test@example.com",
		Phone: "9876543210",
	}
}

func TestValidateAcceptsGoodDetails(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validDetails()))
}

func TestValidateRequiredFields(t *testing.T) {
	v := NewValidator()

	d := validDetails()
	d.Name = ""
	assert.Equal(t, ErrFillRequired, v.Validate(d))

	d = validDetails()
	d.Email = ""
	assert.Equal(t, ErrFillRequired, v.Validate(d))

	d = validDetails()
	d.Phone = ""
	assert.Equal(t, ErrFillRequired, v.Validate(d))
}

func TestValidatePhone(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"9876543210", "6000000000", "7123456789", "8999999999"} {
		d := validDetails()
		d.Phone = ok
		assert.NoError(t, v.Validate(d), ok)
	}

	for _, bad := range []string{"1234567890", "98765432", "98765432101", "98765abc10", "+919876543210"} {
		d := validDetails()
		d.Phone = bad
		assert.Equal(t, ErrInvalidPhone, v.Validate(d), bad)
	}
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"a@b.com", "first.last@clinic.co.in"} {
		d := validDetails()
		d.Email = ok
		assert.NoError(t, v.Validate(d), ok)
	}

	for _, bad := range []string{"a@b", "a b@c.com", "plainaddress", "@no-local.com"} {
		d := validDetails()
		d.Email = bad
		assert.Equal(t, ErrInvalidEmail, v.Validate(d), bad)
	}
}

func TestValidateChecksRequiredBeforeFormat(t *testing.T) {
	// An empty name plus a malformed phone reports the required-fields
	// error first, matching the original step order.
	d := validDetails()
	d.Name = ""
	d.Phone = "12345"
	assert.Equal(t, ErrFillRequired, NewValidator().Validate(d))
}

func TestValidateChecksPhoneBeforeEmail(t *testing.T) {
	d := validDetails()
	d.Phone = "12345"
	d.Email = "nope"
	assert.Equal(t, ErrInvalidPhone, NewValidator().Validate(d))
}
