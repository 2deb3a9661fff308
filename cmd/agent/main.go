package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ryanap7/diwan-print-agent/internal/application/service"
	"github.com/ryanap7/diwan-print-agent/internal/config"
	"github.com/ryanap7/diwan-print-agent/internal/prefs"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/handler"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/routes"
	"github.com/ryanap7/diwan-print-agent/pkg/logging"
	"github.com/ryanap7/diwan-print-agent/pkg/printer"
	"github.com/ryanap7/diwan-print-agent/pkg/receipt"
	"github.com/ryanap7/diwan-print-agent/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize structured logging
	logging.Setup()
	logger := slog.Default()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize the preference store
	prefStore, err := prefs.NewStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open preference store: %v", err)
	}

	// Initialize the printer transport
	var transport printer.Transport
	switch cfg.Printer.Transport {
	case "bluetooth":
		transport = printer.NewBluetoothPrinter(logger)
	default:
		logger.Warn("printer transport disabled", "transport", cfg.Printer.Transport)
		transport = printer.NewNullTransport(logger)
	}

	// Initialize the receipt formatter
	formatter := receipt.NewFormatter(receipt.Config{
		Width:       cfg.Receipt.Width,
		LabelWidth:  cfg.Receipt.LabelWidth,
		PriceColumn: cfg.Receipt.PriceColumn,
		StoreName:   cfg.Store.Name,
		StoreLines:  cfg.Store.Lines,
		FooterLines: cfg.Store.FooterLines,
		Timezone:    cfg.Receipt.Timezone,
	})

	// Initialize services
	handoffs := service.NewHandoffTracker(cfg.Dispatch.FallbackDelay, logger)
	printService := service.NewPrintService(
		transport,
		formatter,
		prefStore,
		handoffs,
		logger,
		cfg.Printer.MaxImageWidth,
		cfg.Printer.Threshold,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Print:       handler.NewPrintHandler(printService, cfg.Storage.UploadMaxSize),
		Printer:     handler.NewPrinterHandler(printService),
		Preferences: handler.NewPreferencesHandler(prefStore),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
