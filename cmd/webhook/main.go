package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-booking-service/internal/config"
	"clinic-booking-service/internal/server"
	"clinic-booking-service/internal/webhook"
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

	tz, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Fatal("invalid clinic timezone", zap.String("tz", cfg.ClinicTimezone), zap.Error(err))
	}

	creds := webhook.Credentials{
		JSON: cfg.GoogleCredentialsJSON,
		File: cfg.GoogleCredentialsFile,
	}

	var sheet webhook.RowAppender
	if cfg.SpreadsheetID != "" {
		svc, err := webhook.NewSheetsService(ctx, creds)
		if err != nil {
			logger.Fatal("sheets service init", zap.Error(err))
		}
		sheet = webhook.NewSheetWriter(svc, cfg.SpreadsheetID, cfg.SheetName, tz)
	} else {
		logger.Warn("SPREADSHEET_ID not set, sheet leg disabled")
	}

	var chat webhook.ChatNotifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		chat = webhook.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	} else {
		logger.Warn("Telegram credentials not set, chat leg disabled")
	}

	var cal webhook.EventCreator
	if cfg.CalendarID != "" && (creds.JSON != "" || creds.File != "") {
		svc, err := webhook.NewCalendarService(ctx, creds)
		if err != nil {
			logger.Fatal("calendar service init", zap.Error(err))
		}
		cal = webhook.NewCalendarWriter(svc, cfg.CalendarID, cfg.ClinicLocation, tz)
	} else {
		logger.Warn("Google credentials not set, calendar leg disabled")
	}

	hook := webhook.New(sheet, chat, cal, logger)

	router := gin.Default()
	router.POST("/", hook.Handle)

	server.Run(router, cfg.Port, logger)
}
