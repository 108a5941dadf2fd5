package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clinic-booking-service/internal/app"
	"clinic-booking-service/internal/booking"
	"clinic-booking-service/internal/config"
	"clinic-booking-service/internal/i18n"
	"clinic-booking-service/internal/notify"
	"clinic-booking-service/internal/payments"
	"clinic-booking-service/internal/server"
	"clinic-booking-service/pkg/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL required")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	var (
		orders payments.OrderService
		payer  payments.Collaborator
	)
	if cfg.MockPayments() {
		logger.Warn("no Razorpay key configured, using mock payments")
		orders = payments.MockOrders{}
		payer = payments.NewMock()
	} else {
		rzp := payments.NewRazorpayOrders(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		orders = rzp
		payer = payments.NewGateway(rzp, cfg.RazorpayKeyID)
	}

	dispatcher := notify.NewDispatcher(
		cfg.WebhookURL,
		notify.ParsePolicy(cfg.WebhookDelivery),
		cfg.WebhookRetryAttempts,
		cfg.WebhookRetryBaseDelay,
		logger,
	)

	a := &app.App{
		Store:        app.NewPGStore(pool),
		Orders:       orders,
		Payer:        payer,
		Dispatcher:   dispatcher,
		Bundle:       i18n.NewBundle(),
		Validator:    booking.NewValidator(),
		Sessions:     app.NewSessionStore(),
		Logger:       logger,
		MockPayments: cfg.MockPayments(),
		DefaultLang:  cfg.DefaultLanguage,
	}

	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/", a.RootHandler)
		api.GET("/translations/:lang", a.TranslationsHandler)
		api.GET("/available-slots", a.AvailableSlotsHandler)
		api.POST("/appointments", a.CreateAppointmentHandler)
		api.POST("/create-payment-order", a.CreatePaymentOrderHandler)
		api.POST("/verify-payment", a.VerifyPaymentHandler)

		sessions := api.Group("/booking-sessions")
		{
			sessions.POST("", a.StartSessionHandler)
			sessions.GET("/:id", a.GetSessionHandler)
			sessions.POST("/:id/slot", a.SessionSlotHandler)
			sessions.POST("/:id/details", a.SessionDetailsHandler)
			sessions.POST("/:id/pay", a.SessionPayHandler)
			sessions.POST("/:id/verify", a.SessionVerifyHandler)
			sessions.POST("/:id/cancel", a.SessionCancelHandler)
			sessions.POST("/:id/back", a.SessionBackHandler)
		}

		admin := api.Group("")
		admin.Use(app.AdminAuth(cfg.StaticTokens, cfg.JWTHMACSecret))
		{
			admin.GET("/appointments", a.ListAppointmentsHandler)
		}
	}

	server.Run(router, cfg.Port, logger)
}
