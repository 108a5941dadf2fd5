package app

import (
	"time"

	"clinic-booking-service/internal/notify"
)

// Appointment is the stored booking record. Dates and times keep their wire
// formats (YYYY-MM-DD, slot label) end to end.
type Appointment struct {
	ID                string    `json:"id"`
	PatientName       string    `json:"patient_name"`
	PatientEmail      string    `json:"patient_email"`
	PatientPhone      string    `json:"patient_phone"`
	AppointmentDate   string    `json:"appointment_date"`
	AppointmentTime   string    `json:"appointment_time"`
	Reason            string    `json:"reason,omitempty"`
	PaymentStatus     string    `json:"payment_status"`
	RazorpayOrderID   string    `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Payload shapes the record for the webhook collaborator.
func (a *Appointment) Payload() notify.Payload {
	return notify.Payload{
		ID:                a.ID,
		PatientName:       a.PatientName,
		PatientEmail:      a.PatientEmail,
		PatientPhone:      a.PatientPhone,
		AppointmentDate:   a.AppointmentDate,
		AppointmentTime:   a.AppointmentTime,
		Reason:            a.Reason,
		PaymentStatus:     a.PaymentStatus,
		RazorpayPaymentID: a.RazorpayPaymentID,
	}
}
