package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"

	"github.com/tectle/backend/internal/domain/order"
)

// ImportMetrics records order import activity. It satisfies the order
// service's import observer so every successful import is counted.
type ImportMetrics struct {
	ordersImported  *Counter
	itemsImported   *Counter
	revenueImported *FloatCounter
	batchSize       *Histogram
	ordersHeld      *Gauge
}

// NewImportMetrics creates the import instruments on meter.
func NewImportMetrics(meter metric.Meter) (*ImportMetrics, error) {
	in, err := NewInstruments(meter)
	if err != nil {
		return nil, err
	}

	m := &ImportMetrics{
		ordersImported: in.Counter("tectle_orders_imported_total",
			"Orders normalized by platform importers", "{order}"),
		itemsImported: in.Counter("tectle_order_items_imported_total",
			"Item units on imported orders", "{item}"),
		revenueImported: in.FloatCounter("tectle_order_revenue_imported",
			"Sum of imported order totals", "{currency}"),
		batchSize: in.Histogram("tectle_import_batch_size",
			"Orders per import batch", "{order}", BatchSizeBuckets),
		ordersHeld: in.Gauge("tectle_orders_held",
			"Orders currently held by the dashboard", "{order}"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveImport records one import batch for platform.
func (m *ImportMetrics) ObserveImport(platform string, orders []order.Order) {
	ctx := context.Background()
	platformAttr := AttrPlatform.String(platform)

	m.batchSize.Record(ctx, float64(len(orders)), platformAttr)
	if len(orders) == 0 {
		return
	}

	m.ordersImported.Add(ctx, int64(len(orders)), platformAttr)

	items := 0
	revenue := make(map[string]decimal.Decimal)
	var currencies []string
	for _, o := range orders {
		items += o.TotalQuantity()
		if _, seen := revenue[o.Currency]; !seen {
			currencies = append(currencies, o.Currency)
		}
		revenue[o.Currency] = revenue[o.Currency].Add(o.TotalPrice)
	}

	m.itemsImported.Add(ctx, int64(items), platformAttr)
	for _, currency := range currencies {
		m.revenueImported.Add(ctx, revenue[currency].InexactFloat64(), platformAttr, AttrCurrency.String(currency))
	}
}

// RecordOrdersHeld records how many orders the dashboard currently holds.
func (m *ImportMetrics) RecordOrdersHeld(ctx context.Context, n int) {
	m.ordersHeld.Record(ctx, int64(n))
}
