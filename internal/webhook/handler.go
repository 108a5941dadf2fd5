package webhook

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-booking-service/internal/notify"
)

// The three fan-out legs. Each is independently best-effort: a failing leg
// is logged and never fails the webhook response, so a calendar outage
// cannot lose the spreadsheet row.
type (
	RowAppender interface {
		Append(ctx context.Context, p notify.Payload) error
	}
	ChatNotifier interface {
		Notify(ctx context.Context, p notify.Payload) error
	}
	EventCreator interface {
		Create(ctx context.Context, p notify.Payload) error
	}
)

// Hook is the persistence/notification collaborator endpoint. Unconfigured
// legs are nil and skipped.
type Hook struct {
	sheet    RowAppender
	chat     ChatNotifier
	calendar EventCreator
	logger   *zap.Logger
}

func New(sheet RowAppender, chat ChatNotifier, calendar EventCreator, logger *zap.Logger) *Hook {
	return &Hook{sheet: sheet, chat: chat, calendar: calendar, logger: logger}
}

// Handle accepts a finalized booking payload and runs the fan-out.
func (h *Hook) Handle(c *gin.Context) {
	var p notify.Payload
	if err := c.BindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	h.logger.Info("received booking payload",
		zap.String("appointment_id", p.ID),
		zap.String("date", p.AppointmentDate),
		zap.String("time", p.AppointmentTime))

	if h.sheet != nil {
		if err := h.sheet.Append(ctx, p); err != nil {
			h.logger.Error("sheet append failed", zap.String("appointment_id", p.ID), zap.Error(err))
		}
	}
	if h.chat != nil {
		if err := h.chat.Notify(ctx, p); err != nil {
			h.logger.Error("chat notification failed", zap.String("appointment_id", p.ID), zap.Error(err))
		}
	}
	if h.calendar != nil {
		if err := h.calendar.Create(ctx, p); err != nil {
			h.logger.Error("calendar event failed", zap.String("appointment_id", p.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Appointment saved successfully"})
}
