package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrMeterNil is returned when an instrument set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Instruments creates instruments on a single meter. A failed creation is
// replaced by a no-op instrument and the first error is kept for Err, so a
// whole set can be declared before checking once.
type Instruments struct {
	meter metric.Meter
	err   error
}

// NewInstruments returns an instrument set bound to meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	return &Instruments{meter: meter}, nil
}

// Err returns the first instrument creation error, if any.
func (in *Instruments) Err() error {
	return in.err
}

func (in *Instruments) record(name string, err error) bool {
	if err == nil {
		return true
	}
	if in.err == nil {
		in.err = fmt.Errorf("failed to create instrument %s: %w", name, err)
	}
	return false
}

// Counter counts whole units: orders, items, requests.
type Counter struct {
	inner metric.Int64Counter
}

// Counter declares a monotonic integer counter.
func (in *Instruments) Counter(name, description, unit string) *Counter {
	c, err := in.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if !in.record(name, err) || c == nil {
		c = noop.Int64Counter{}
	}
	return &Counter{inner: c}
}

// Add increments the counter by n.
func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.inner.Add(ctx, n, metric.WithAttributes(attrs...))
}

// FloatCounter accumulates amounts such as revenue.
type FloatCounter struct {
	inner metric.Float64Counter
}

// FloatCounter declares a monotonic float counter.
func (in *Instruments) FloatCounter(name, description, unit string) *FloatCounter {
	c, err := in.meter.Float64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if !in.record(name, err) || c == nil {
		c = noop.Float64Counter{}
	}
	return &FloatCounter{inner: c}
}

// Add increments the counter. Negative values are dropped by the SDK.
func (c *FloatCounter) Add(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	c.inner.Add(ctx, v, metric.WithAttributes(attrs...))
}

// Histogram records distributions such as batch sizes or latencies.
type Histogram struct {
	inner metric.Float64Histogram
}

// Histogram declares a float histogram. Empty bounds keep the SDK defaults.
func (in *Instruments) Histogram(name, description, unit string, bounds []float64) *Histogram {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(bounds...))
	}
	h, err := in.meter.Float64Histogram(name, opts...)
	if !in.record(name, err) || h == nil {
		h = noop.Float64Histogram{}
	}
	return &Histogram{inner: h}
}

// Record adds one observation.
func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.inner.Record(ctx, v, metric.WithAttributes(attrs...))
}

// RecordDuration adds d in seconds.
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.inner.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// Gauge reports the latest value, e.g. orders held in memory.
type Gauge struct {
	inner metric.Int64Gauge
}

// Gauge declares an integer gauge.
func (in *Instruments) Gauge(name, description, unit string) *Gauge {
	g, err := in.meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if !in.record(name, err) || g == nil {
		g = noop.Int64Gauge{}
	}
	return &Gauge{inner: g}
}

// Record sets the gauge.
func (g *Gauge) Record(ctx context.Context, v int64, attrs ...attribute.KeyValue) {
	g.inner.Record(ctx, v, metric.WithAttributes(attrs...))
}

// UpDownCounter tracks values that rise and fall, like requests in flight.
type UpDownCounter struct {
	inner metric.Int64UpDownCounter
}

// UpDownCounter declares an integer up-down counter.
func (in *Instruments) UpDownCounter(name, description, unit string) *UpDownCounter {
	c, err := in.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if !in.record(name, err) || c == nil {
		c = noop.Int64UpDownCounter{}
	}
	return &UpDownCounter{inner: c}
}

// Add moves the counter by n, which may be negative.
func (c *UpDownCounter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.inner.Add(ctx, n, metric.WithAttributes(attrs...))
}
