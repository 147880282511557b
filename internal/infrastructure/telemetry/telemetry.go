// Package telemetry provides OpenTelemetry integration for the order dashboard:
// metrics, traces and a zap log bridge, all exported over OTLP/gRPC.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// Config holds the settings shared by all telemetry providers.
type Config struct {
	MetricsEnabled    bool
	TracingEnabled    bool
	LogsEnabled       bool
	CollectorEndpoint string
	SamplingRatio     float64
	ExportInterval    time.Duration // Default: 60s
	ServiceName       string
	ServiceVersion    string // Default: 1.0.0
	Insecure          bool
}

const shutdownTimeout = 10 * time.Second

// sdkProvider is the lifecycle the SDK meter, tracer and logger providers share.
type sdkProvider interface {
	Shutdown(ctx context.Context) error
	ForceFlush(ctx context.Context) error
}

// signal tracks one exported signal. sdk stays nil while the signal is
// disabled, which turns every lifecycle call into a no-op.
type signal struct {
	name   string
	sdk    sdkProvider
	logger *zap.Logger
}

func newSignal(name string, logger *zap.Logger) signal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return signal{name: name, logger: logger.With(zap.String("signal", name))}
}

// IsEnabled reports whether the signal is exported.
func (s *signal) IsEnabled() bool {
	return s.sdk != nil
}

// ForceFlush exports everything buffered so far.
func (s *signal) ForceFlush(ctx context.Context) error {
	if s.sdk == nil {
		return nil
	}
	return s.sdk.ForceFlush(ctx)
}

// Shutdown flushes and stops the provider, waiting at most shutdownTimeout.
func (s *signal) Shutdown(ctx context.Context) error {
	if s.sdk == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.sdk.Shutdown(ctx); err != nil {
		s.logger.Error("Telemetry provider shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", s.name, err)
	}
	s.logger.Info("Telemetry provider stopped")
	return nil
}

func newResource(cfg Config) (*resource.Resource, error) {
	version := cfg.ServiceVersion
	if version == "" {
		version = "1.0.0"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Providers groups the meter, tracer and logger providers of one process.
type Providers struct {
	Meter  *MeterProvider
	Tracer *TracerProvider
	Logs   *LoggerProvider
}

// Setup creates every provider. Disabled signals get no-op providers.
// If one provider fails, those already created are shut down.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}

	var err error
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	return p, nil
}

// Shutdown flushes and stops every provider, logs last.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
