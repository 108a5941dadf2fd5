package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinic-booking-service/internal/notify"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier posts the new-booking chat message to the clinic's
// Telegram channel.
type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *TelegramNotifier) Notify(ctx context.Context, p notify.Payload) error {
	body, err := json.Marshal(map[string]string{
		"chat_id":    n.chatID,
		"text":       buildMessage(p),
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded %d", resp.StatusCode)
	}
	return nil
}

func buildMessage(p notify.Payload) string {
	reason := p.Reason
	if reason == "" {
		reason = "General Consultation"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*New Appointment Booked!*\n\n")
	fmt.Fprintf(&b, "*Patient:* %s\n", p.PatientName)
	fmt.Fprintf(&b, "*Phone:* %s\n", p.PatientPhone)
	fmt.Fprintf(&b, "*Email:* %s\n\n", p.PatientEmail)
	fmt.Fprintf(&b, "*Date:* %s\n", p.AppointmentDate)
	fmt.Fprintf(&b, "*Time:* %s\n\n", p.AppointmentTime)
	fmt.Fprintf(&b, "*Reason:* %s\n\n", reason)
	fmt.Fprintf(&b, "*Payment:* ₹500 (Paid)\n")
	fmt.Fprintf(&b, "*Payment ID:* %s\n\n", p.RazorpayPaymentID)
	fmt.Fprintf(&b, "*Appointment ID:* %s", p.ID)
	return b.String()
}
