package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/infrastructure/telemetry"
	"github.com/tectle/backend/internal/interfaces/http/handler"
	"github.com/tectle/backend/internal/interfaces/http/middleware"
)

// EngineConfig configures the middleware stack built by NewEngine
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	MeterProvider  *telemetry.MeterProvider // nil disables HTTP metrics
	MaxBodySize    int64
	CORSOrigins    []string
	TrustedProxies []string
	APIVersion     string // Default: v1
}

// Handlers groups the HTTP handlers served by the engine
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Orders    *handler.OrderHandler
	System    *handler.SystemHandler
}

// NewEngine builds the gin engine serving the dashboard, the order API and
// the health check.
//
// Middleware runs in this order:
//  1. RequestID, Recovery
//  2. Tracing with span enrichment and error marking
//  3. Request logging, security headers, CORS
//  4. HTTP metrics, body limit
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.CORSOrigins...))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: cfg.MeterProvider,
		Enabled:       cfg.MeterProvider != nil,
	}))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/", h.Dashboard.Index)
	engine.POST("/import/:platform", h.Dashboard.Import)

	orderRoutes := NewGroup("orders", "/orders").
		GET("", h.Orders.List).
		GET("/report", h.Orders.Report).
		GET("/by-status", h.Orders.ByStatus).
		GET("/platforms", h.Orders.Platforms).
		POST("/import/:platform", h.Orders.Import)

	systemRoutes := NewGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	NewAPI(engine, WithVersion(cfg.APIVersion)).
		Mount(orderRoutes, systemRoutes).
		Setup()
	return engine
}
