package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/infrastructure/config"
	"github.com/tectle/backend/internal/infrastructure/dashboard"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/infrastructure/sample"
	"github.com/tectle/backend/internal/infrastructure/telemetry"
	"github.com/tectle/backend/internal/interfaces/http/handler"
	"github.com/tectle/backend/internal/interfaces/http/middleware"
	"github.com/tectle/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	fs := config.NewFlagSet("tectle-dashboard")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry providers come first so the final logger can bridge into OTLP
	providers, err := telemetry.Setup(context.Background(), telemetry.Config{
		MetricsEnabled:    cfg.Telemetry.Enabled,
		TracingEnabled:    cfg.Telemetry.TracingEnabled,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	log, err := logger.New(logCfg,
		logger.WithCore(telemetry.NewZapOTELCore(providers.Logs, logger.ParseLevel(cfg.Log.Level))),
		logger.WithFields(zap.String("service", cfg.Telemetry.ServiceName)),
	)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Tectle dashboard",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("addr", cfg.App.Addr()),
	)

	importMetrics, err := telemetry.NewImportMetrics(providers.Meter.Meter("tectle.orders"))
	if err != nil {
		log.Fatal("Failed to create import metrics", zap.Error(err))
	}

	service := orders.NewOrderService(
		orders.WithLogger(log),
		orders.WithImportObserver(importMetrics),
	)
	book, err := loadOrders(service, cfg.Data.PayloadPath)
	if err != nil {
		log.Fatal("Failed to load orders", zap.String("path", cfg.Data.PayloadPath), zap.Error(err))
	}
	importMetrics.RecordOrdersHeld(context.Background(), book.Len())
	log.Info("Orders loaded",
		zap.Int("orders", book.Len()),
		zap.Strings("platforms", service.Platforms()),
		zap.Bool("sample_data", cfg.Data.PayloadPath == ""),
	)

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		log.Fatal("Failed to build dashboard renderer", zap.Error(err))
	}

	importer := handler.NewOrderImporter(service, book, importMetrics)
	handlers := router.Handlers{
		Dashboard: handler.NewDashboardHandler(renderer, book, importer, cfg.HTTP.MaxUploadSize),
		Orders:    handler.NewOrderHandler(service, book, importer),
		System:    handler.NewSystemHandler(cfg.App.Name, version, service, book),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var meterProvider *telemetry.MeterProvider
	if providers.Meter.IsEnabled() {
		meterProvider = providers.Meter
	}
	engine := router.NewEngine(router.EngineConfig{
		Logger:         log,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: providers.Tracer.IsEnabled(),
		MeterProvider:  meterProvider,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, handlers)

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// loadOrders imports the startup payloads into a new order book.
func loadOrders(service *orders.OrderService, path string) (*orders.OrderBook, error) {
	batches, err := sample.Load(path)
	if err != nil {
		return nil, err
	}
	imported, err := service.ImportAll(batches)
	if err != nil {
		return nil, fmt.Errorf("import startup orders: %w", err)
	}
	return orders.NewOrderBook(imported...), nil
}
