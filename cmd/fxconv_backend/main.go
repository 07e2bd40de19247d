package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/currency_converter_app/internal/core/ledger"
	"github.com/SscSPs/currency_converter_app/internal/core/services"
	"github.com/SscSPs/currency_converter_app/internal/handlers"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/SscSPs/currency_converter_app/internal/platform/config"
	"github.com/SscSPs/currency_converter_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// @title FX Converter API
// @version 1.0
// @description Exchange rate table, currency conversion and per-user conversion history.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ledgerOpts := []ledger.Option{}
	if cfg.RatesFile != "" {
		seed, err := config.LoadRateSeed(cfg.RatesFile)
		if err != nil {
			logger.Error("Failed to load rates file", slog.String("path", cfg.RatesFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
		ledgerOpts = append(ledgerOpts, ledger.WithRates(seed))
		logger.Info("Loaded exchange rates from file", slog.String("path", cfg.RatesFile), slog.Int("count", len(seed)))
	}
	rateLedger := ledger.New(ledgerOpts...)

	appMetrics := metrics.New()
	serviceContainer := services.NewServiceContainer(rateLedger, appMetrics)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, appMetrics); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.Any("currencies", rateLedger.SupportedCurrencies()),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
