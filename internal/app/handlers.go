package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-booking-service/internal/booking"
	"clinic-booking-service/internal/payments"
	"clinic-booking-service/internal/slots"
)

// GET /api/
func (a *App) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "BL Uro-Stone & Kidney Clinic API"})
}

// GET /api/translations/:lang
func (a *App) TranslationsHandler(c *gin.Context) {
	lang := c.Param("lang")
	table := a.Bundle.Table(lang)
	if table == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown language", "languages": a.Bundle.Languages()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "translations": table})
}

// GET /api/available-slots?date=YYYY-MM-DD
// Slots already taken by completed bookings are hidden; an ineligible date
// (past or closed day) yields an empty list rather than an error so the
// caller can surface the no-slots state.
func (a *App) AvailableSlotsHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date required (YYYY-MM-DD)"})
		return
	}
	now := a.now()
	date, err := time.ParseInLocation(slots.DateLayout, dateStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	available := slots.Available(date, now)
	if len(available) == 0 {
		c.JSON(http.StatusOK, gin.H{"available_slots": []string{}})
		return
	}

	booked, err := a.Store.BookedTimes(c.Request.Context(), dateStr)
	if err != nil {
		// Degrade to the empty-slot display; reselecting the date retries.
		a.Logger.Error("booked times lookup failed", zap.String("date", dateStr), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"available_slots": []string{}})
		return
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}
	open := make([]string, 0, len(available))
	for _, label := range available {
		if _, ok := taken[label]; !ok {
			open = append(open, label)
		}
	}
	c.JSON(http.StatusOK, gin.H{"available_slots": open})
}

type createAppointmentReq struct {
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	PatientPhone    string `json:"patient_phone"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
}

// POST /api/appointments
func (a *App) CreateAppointmentHandler(c *gin.Context) {
	locale := a.locale(c.Query("lang"))

	var req createAppointmentReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.Validator.Validate(booking.Details{
		Name:  req.PatientName,
		Email: req.PatientEmail,
		Phone: req.PatientPhone,
	}); err != nil {
		a.renderBookingError(c, locale, err)
		return
	}

	now := a.now()
	date, err := time.ParseInLocation(slots.DateLayout, req.AppointmentDate, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment_date"})
		return
	}
	available := slots.Available(date, now)
	if !containsLabel(available, req.AppointmentTime) {
		a.renderBookingError(c, locale, booking.ErrSelectDateTime)
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = booking.DefaultReason
	}
	appt := &Appointment{
		ID:              uuid.NewString(),
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          reason,
		PaymentStatus:   string(booking.PaymentPending),
		CreatedAt:       now.UTC(),
	}
	if err := a.Store.Insert(c.Request.Context(), appt); err != nil {
		a.Logger.Error("appointment insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": locale.T("booking.errors.bookingFailed")})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

type createOrderReq struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

// POST /api/create-payment-order
func (a *App) CreatePaymentOrderHandler(c *gin.Context) {
	var req createOrderReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount == 0 {
		req.Amount = payments.FeePaise
	}
	if req.Currency == "" {
		req.Currency = payments.Currency
	}

	ctx := c.Request.Context()
	if _, err := a.Store.Get(ctx, req.AppointmentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	order, err := a.Orders.Create(ctx, req.Amount, req.Currency, req.AppointmentID)
	if err != nil {
		a.Logger.Error("payment order create failed",
			zap.String("appointment_id", req.AppointmentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment order"})
		return
	}
	if err := a.Store.SetOrderID(ctx, req.AppointmentID, order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

type verifyPaymentReq struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature"`
	AppointmentID     string `json:"appointment_id" binding:"required"`
}

// POST /api/verify-payment
// On success the appointment is marked completed and the webhook payload is
// dispatched; delivery stays on the side channel and cannot fail the
// confirmation.
func (a *App) VerifyPaymentHandler(c *gin.Context) {
	locale := a.locale(c.Query("lang"))

	var req verifyPaymentReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if !a.Orders.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if err := a.Store.SetPaymentStatus(ctx, req.AppointmentID, "failed", ""); err != nil && !errors.Is(err, ErrNotFound) {
			a.Logger.Error("marking payment failed", zap.String("appointment_id", req.AppointmentID), zap.Error(err))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": locale.T("booking.errors.paymentFailed")})
		return
	}

	if err := a.Store.SetPaymentStatus(ctx, req.AppointmentID, string(booking.PaymentCompleted), req.RazorpayPaymentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	appt, err := a.Store.Get(ctx, req.AppointmentID)
	if err == nil {
		a.Dispatcher.Dispatch(ctx, appt.Payload())
	} else {
		a.Logger.Error("loading appointment for dispatch", zap.String("appointment_id", req.AppointmentID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": locale.T("booking.success.title"),
	})
}

// GET /api/appointments (admin)
func (a *App) ListAppointmentsHandler(c *gin.Context) {
	appts, err := a.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if appts == nil {
		appts = []Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// renderBookingError maps booking failures to responses: user-correctable
// *booking.Error values localize to 400s, wrong-state operations to 409.
func (a *App) renderBookingError(c *gin.Context, locale localizer, err error) {
	var be *booking.Error
	switch {
	case errors.As(err, &be):
		c.JSON(http.StatusBadRequest, gin.H{"error": locale.T(be.Key)})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type localizer interface {
	T(key string) string
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
