package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Razorpay key values that mean "no real gateway configured". Bookings made
// while one of these is in effect go through the mock payment path.
var placeholderRazorpayKeys = map[string]struct{}{
	"":                     {},
	"placeholder_key_id":   {},
	"rzp_test_YOUR_KEY_ID": {},
}

// Config holds application configuration for both the booking API
// and the webhook service.
type Config struct {
	Port     string
	LogLevel string

	DatabaseURL string

	// Persistence/notification collaborator.
	WebhookURL            string
	WebhookDelivery       string // "best_effort" or "at_least_once"
	WebhookRetryAttempts  int
	WebhookRetryBaseDelay time.Duration

	// Payment gateway. Placeholder or empty key id selects the mock path.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Google credentials for the webhook service (Sheets + Calendar).
	GoogleCredentialsJSON string
	GoogleCredentialsFile string
	SpreadsheetID         string
	SheetName             string
	CalendarID            string

	// Telegram chat notification. Skipped when token or chat id is empty.
	TelegramBotToken string
	TelegramChatID   string

	ClinicTimezone string
	ClinicLocation string

	// Admin endpoint auth.
	StaticTokens  []string
	JWTHMACSecret string

	DefaultLanguage string
}

// Load reads configuration from the environment. A .env file is honored
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		WebhookURL:            getEnv("WEBHOOK_URL", ""),
		WebhookDelivery:       strings.ToLower(strings.TrimSpace(getEnv("WEBHOOK_DELIVERY", "best_effort"))),
		WebhookRetryAttempts:  getEnvAsInt("WEBHOOK_RETRY_ATTEMPTS", 3),
		WebhookRetryBaseDelay: getEnvAsDuration("WEBHOOK_RETRY_BASE_DELAY", 2*time.Second),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		SheetName:             getEnv("SHEET_NAME", "Appointments"),
		CalendarID:            getEnv("CALENDAR_ID", "primary"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		ClinicTimezone: getEnv("CLINIC_TIMEZONE", "Asia/Kolkata"),
		ClinicLocation: getEnv("CLINIC_LOCATION", "BL Uro-Stone & Kidney Clinic, Purnea, Bihar"),

		StaticTokens:  splitTokens(getEnv("STATIC_TOKENS", "")),
		JWTHMACSecret: strings.TrimSpace(getEnv("JWT_HMAC_SECRET", "")),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
	}
}

// MockPayments reports whether the mock payment strategy should be used.
func (c *Config) MockPayments() bool {
	_, placeholder := placeholderRazorpayKeys[strings.TrimSpace(c.RazorpayKeyID)]
	return placeholder
}

func splitTokens(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
