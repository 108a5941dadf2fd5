package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Payload is the booking submission sent to the persistence/notification
// collaborator once a payment completes.
type Payload struct {
	ID                string `json:"id"`
	PatientName       string `json:"patient_name"`
	PatientEmail      string `json:"patient_email"`
	PatientPhone      string `json:"patient_phone"`
	AppointmentDate   string `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime   string `json:"appointment_time"` // slot label
	Reason            string `json:"reason"`
	PaymentStatus     string `json:"payment_status"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
}

// Policy is the delivery guarantee for webhook dispatch.
type Policy string

const (
	// PolicyBestEffort sends once and swallows failures. This is the
	// default: a booking is confirmed to the patient even if the side
	// channel never hears about it.
	PolicyBestEffort Policy = "best_effort"

	// PolicyAtLeastOnce retries with linear backoff until the webhook
	// accepts the payload or attempts run out.
	PolicyAtLeastOnce Policy = "at_least_once"
)

// ParsePolicy maps a config string to a Policy, defaulting to best effort.
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyAtLeastOnce {
		return PolicyAtLeastOnce
	}
	return PolicyBestEffort
}

// Dispatcher posts booking payloads to the webhook collaborator. Dispatch
// never returns an error: the outcome is logged and, per policy, retried,
// but it never blocks or fails a confirmation.
type Dispatcher struct {
	url         string
	client      *http.Client
	policy      Policy
	maxAttempts int
	baseDelay   time.Duration
	logger      *zap.Logger
}

func NewDispatcher(url string, policy Policy, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *Dispatcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Dispatcher{
		url:         url,
		client:      &http.Client{Timeout: 10 * time.Second},
		policy:      policy,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

// Dispatch sends the payload according to the configured policy.
func (d *Dispatcher) Dispatch(ctx context.Context, p Payload) {
	if d.url == "" {
		d.logger.Warn("webhook url not configured, dropping booking payload",
			zap.String("appointment_id", p.ID))
		return
	}

	attempts := 1
	if d.policy == PolicyAtLeastOnce {
		attempts = d.maxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err := d.send(ctx, p)
		if err == nil {
			d.logger.Info("booking payload delivered",
				zap.String("appointment_id", p.ID),
				zap.Int("attempt", attempt))
			return
		}
		d.logger.Error("webhook delivery failed",
			zap.String("appointment_id", p.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt) * d.baseDelay):
			}
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
