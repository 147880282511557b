package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/tectle/backend/internal/infrastructure/telemetry"
)

func TestNewInstruments_NilMeter(t *testing.T) {
	_, err := telemetry.NewInstruments(nil)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestInstruments_Record(t *testing.T) {
	ctx := context.Background()
	reader, provider := newTestMeter(t)

	in, err := telemetry.NewInstruments(provider.Meter("test"))
	require.NoError(t, err)

	imported := in.Counter("imported_total", "Orders imported", "{order}")
	revenue := in.FloatCounter("revenue", "Revenue", "{currency}")
	batch := in.Histogram("batch_size", "Orders per batch", "{order}", telemetry.BatchSizeBuckets)
	latency := in.Histogram("latency", "Latency", "s", nil)
	held := in.Gauge("held", "Orders held", "{order}")
	inflight := in.UpDownCounter("inflight", "Requests in flight", "{request}")
	require.NoError(t, in.Err())

	etsy := telemetry.AttrPlatform.String("etsy")
	imported.Add(ctx, 2, etsy)
	imported.Add(ctx, 3, etsy)
	revenue.Add(ctx, 10.25)
	revenue.Add(ctx, 4.75)
	batch.Record(ctx, 3)
	batch.Record(ctx, 40)
	latency.RecordDuration(ctx, 250*time.Millisecond)
	held.Record(ctx, 4)
	held.Record(ctx, 7)
	inflight.Add(ctx, 2)
	inflight.Add(ctx, -1)

	metrics := collect(t, reader)

	sum := metrics["imported_total"].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(5), sum.DataPoints[0].Value)
	assert.True(t, sum.IsMonotonic)

	money := metrics["revenue"].Data.(metricdata.Sum[float64])
	require.Len(t, money.DataPoints, 1)
	assert.InDelta(t, 15.0, money.DataPoints[0].Value, 1e-9)

	sizes := metrics["batch_size"].Data.(metricdata.Histogram[float64])
	require.Len(t, sizes.DataPoints, 1)
	assert.Equal(t, uint64(2), sizes.DataPoints[0].Count)
	assert.Equal(t, 43.0, sizes.DataPoints[0].Sum)
	assert.Equal(t, telemetry.BatchSizeBuckets, sizes.DataPoints[0].Bounds)

	lat := metrics["latency"].Data.(metricdata.Histogram[float64])
	require.Len(t, lat.DataPoints, 1)
	assert.InDelta(t, 0.25, lat.DataPoints[0].Sum, 1e-9)

	gauge := metrics["held"].Data.(metricdata.Gauge[int64])
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)

	updown := metrics["inflight"].Data.(metricdata.Sum[int64])
	require.Len(t, updown.DataPoints, 1)
	assert.Equal(t, int64(1), updown.DataPoints[0].Value)
	assert.False(t, updown.IsMonotonic)
}

var errCounterRejected = errors.New("counter rejected")

type rejectingMeter struct {
	noop.Meter
}

func (rejectingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errCounterRejected
}

func TestInstruments_KeepsFirstError(t *testing.T) {
	in, err := telemetry.NewInstruments(rejectingMeter{})
	require.NoError(t, err)

	first := in.Counter("first_total", "", "")
	in.Counter("second_total", "", "")
	in.Gauge("held", "", "")

	require.ErrorIs(t, in.Err(), errCounterRejected)
	assert.Contains(t, in.Err().Error(), "first_total")
	assert.NotPanics(t, func() { first.Add(context.Background(), 1) })
}

func TestNewImportMetrics_CreationError(t *testing.T) {
	_, err := telemetry.NewImportMetrics(rejectingMeter{})
	assert.ErrorIs(t, err, errCounterRejected)
}
