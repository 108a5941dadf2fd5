package webhook

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Credentials locates the service-account JSON for the Google legs:
// inline JSON takes precedence over a key file path.
type Credentials struct {
	JSON string
	File string
}

func (c Credentials) data() ([]byte, error) {
	if c.JSON != "" {
		return []byte(c.JSON), nil
	}
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("read google credentials file: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("google credentials not configured")
}

func (c Credentials) tokenSource(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	data, err := c.data()
	if err != nil {
		return nil, err
	}
	conf, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	return conf.TokenSource(ctx), nil
}

// NewSheetsService builds a Sheets client authorized for spreadsheet writes.
func NewSheetsService(ctx context.Context, creds Credentials) (*sheets.Service, error) {
	ts, err := creds.tokenSource(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}

// NewCalendarService builds a Calendar client authorized for event writes.
func NewCalendarService(ctx context.Context, creds Credentials) (*calendar.Service, error) {
	ts, err := creds.tokenSource(ctx, calendar.CalendarEventsScope)
	if err != nil {
		return nil, err
	}
	return calendar.NewService(ctx, option.WithTokenSource(ts))
}
