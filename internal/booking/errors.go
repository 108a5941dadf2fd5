package booking

import "errors"

// Error is a user-correctable booking failure. Key indexes the bilingual
// dictionary; the HTTP layer localizes it before it reaches the patient.
type Error struct {
	Key string
}

func (e *Error) Error() string { return e.Key }

var (
	ErrSelectDateTime   = &Error{Key: "booking.errors.selectDateTime"}
	ErrFillRequired     = &Error{Key: "booking.errors.fillRequired"}
	ErrInvalidPhone     = &Error{Key: "booking.errors.invalidPhone"}
	ErrInvalidEmail     = &Error{Key: "booking.errors.invalidEmail"}
	ErrNoSlots          = &Error{Key: "booking.step1.noSlots"}
	ErrBookingFailed    = &Error{Key: "booking.errors.bookingFailed"}
	ErrPaymentFailed    = &Error{Key: "booking.errors.paymentFailed"}
	ErrPaymentCancelled = &Error{Key: "booking.errors.paymentCancelled"}
)

// ErrInvalidTransition is returned when an operation does not apply to the
// wizard's current state. Unlike *Error values it is not shown to patients.
var ErrInvalidTransition = errors.New("booking: operation not valid in current state")
