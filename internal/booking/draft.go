package booking

import (
	"fmt"
	"time"

	"clinic-booking-service/internal/notify"
	"clinic-booking-service/internal/slots"
)

// PaymentStatus of a draft. The only modeled transition is
// pending -> completed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

const (
	// DefaultReason is used when the patient leaves the reason blank.
	DefaultReason = "General Consultation"

	// IDPrefix starts every appointment id.
	IDPrefix = "apt_"
)

// Draft is the in-progress appointment held by the wizard. Fields fill in
// across the steps; id and payment reference are assigned during payment.
// Once dispatched to the collaborator the draft is history: the durable
// record lives in the collaborator's store.
type Draft struct {
	ID               string
	PatientName      string
	PatientEmail     string
	PatientPhone     string
	Reason           string
	Date             time.Time
	TimeSlot         string
	PaymentStatus    PaymentStatus
	PaymentReference string
}

// NewID derives a timestamp-based appointment id, unique per booking attempt.
func NewID(now time.Time) string {
	return fmt.Sprintf("%s%d", IDPrefix, now.UnixMilli())
}

// Payload shapes the draft for the persistence/notification collaborator.
func (d *Draft) Payload() notify.Payload {
	return notify.Payload{
		ID:                d.ID,
		PatientName:       d.PatientName,
		PatientEmail:      d.PatientEmail,
		PatientPhone:      d.PatientPhone,
		AppointmentDate:   d.Date.Format(slots.DateLayout),
		AppointmentTime:   d.TimeSlot,
		Reason:            d.Reason,
		PaymentStatus:     string(d.PaymentStatus),
		RazorpayPaymentID: d.PaymentReference,
	}
}
