package webhook

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"

	"clinic-booking-service/internal/notify"
)

// receivedAtLayout matches the locale-style timestamp the clinic staff are
// used to reading in the sheet.
const receivedAtLayout = "02/01/2006, 3:04:05 pm"

// SheetWriter appends one row per confirmed booking to the clinic's
// appointment spreadsheet.
type SheetWriter struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	tz            *time.Location
	clock         func() time.Time
}

func NewSheetWriter(svc *sheets.Service, spreadsheetID, sheetName string, tz *time.Location) *SheetWriter {
	return &SheetWriter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		tz:            tz,
		clock:         time.Now,
	}
}

func (w *SheetWriter) Append(ctx context.Context, p notify.Payload) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{w.buildRow(p)}}
	_, err := w.svc.Spreadsheets.Values.
		Append(w.spreadsheetID, w.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

func (w *SheetWriter) buildRow(p notify.Payload) []interface{} {
	reason := p.Reason
	if reason == "" {
		reason = "General Consultation"
	}
	return []interface{}{
		p.ID,
		p.PatientName,
		p.PatientEmail,
		p.PatientPhone,
		p.AppointmentDate,
		p.AppointmentTime,
		reason,
		p.PaymentStatus,
		p.RazorpayPaymentID,
		w.clock().In(w.tz).Format(receivedAtLayout),
	}
}
