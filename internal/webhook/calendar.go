package webhook

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"clinic-booking-service/internal/notify"
	"clinic-booking-service/internal/slots"
)

// CalendarWriter creates the appointment event on the clinic calendar,
// spanning the fixed appointment duration from the slot's resolved time.
type CalendarWriter struct {
	svc        *calendar.Service
	calendarID string
	location   string
	tz         *time.Location
}

func NewCalendarWriter(svc *calendar.Service, calendarID, location string, tz *time.Location) *CalendarWriter {
	return &CalendarWriter{svc: svc, calendarID: calendarID, location: location, tz: tz}
}

func (w *CalendarWriter) Create(ctx context.Context, p notify.Payload) error {
	event, err := w.buildEvent(p)
	if err != nil {
		return err
	}
	if _, err := w.svc.Events.Insert(w.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar insert: %w", err)
	}
	return nil
}

func (w *CalendarWriter) buildEvent(p notify.Payload) (*calendar.Event, error) {
	date, err := time.ParseInLocation(slots.DateLayout, p.AppointmentDate, w.tz)
	if err != nil {
		return nil, fmt.Errorf("parse appointment date %q: %w", p.AppointmentDate, err)
	}
	start, err := slots.At(date, p.AppointmentTime)
	if err != nil {
		return nil, err
	}
	end := start.Add(slots.Duration)

	reason := p.Reason
	if reason == "" {
		reason = "General Consultation"
	}
	description := fmt.Sprintf(
		"Patient Details:\nName: %s\nPhone: %s\nEmail: %s\n\nReason: %s\n\nPayment Status: Completed\nPayment ID: %s\nAppointment ID: %s",
		p.PatientName, p.PatientPhone, p.PatientEmail, reason, p.RazorpayPaymentID, p.ID,
	)

	return &calendar.Event{
		Summary:     "Appointment - " + p.PatientName,
		Location:    w.location,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: w.tz.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: w.tz.String(),
		},
	}, nil
}
