package app

import (
	"time"

	"go.uber.org/zap"

	"clinic-booking-service/internal/booking"
	"clinic-booking-service/internal/i18n"
	"clinic-booking-service/internal/payments"
)

// App wires the booking API's collaborators into the HTTP handlers.
type App struct {
	Store        Store
	Orders       payments.OrderService
	Payer        payments.Collaborator
	Dispatcher   booking.Dispatcher
	Bundle       *i18n.Bundle
	Validator    *booking.Validator
	Sessions     *SessionStore
	Logger       *zap.Logger
	Clock        func() time.Time
	MockPayments bool
	DefaultLang  string
}

// locale resolves the request language, defaulting per bundle rules.
func (a *App) locale(lang string) *i18n.Locale {
	if lang == "" {
		lang = a.DefaultLang
	}
	return a.Bundle.Locale(lang)
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}
