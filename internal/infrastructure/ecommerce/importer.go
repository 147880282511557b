package ecommerce

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
)

// DefaultCurrency is used when neither the order nor the item names a currency.
const DefaultCurrency = "USD"

// Option configures an importer.
type Option func(*importerOptions)

type importerOptions struct {
	now func() time.Time
}

// WithClock overrides the clock used when a payload carries no usable timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *importerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func newImporterOptions(opts []Option) importerOptions {
	o := importerOptions{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DefaultImporters returns a fresh registry seeded with the Etsy and Shopify importers.
func DefaultImporters(opts ...Option) map[string]integration.Importer {
	return map[string]integration.Importer{
		integration.PlatformCodeEtsy.String():    NewEtsyImporter(opts...),
		integration.PlatformCodeShopify.String(): NewShopifyImporter(opts...),
	}
}

// sumSubtotals returns the sum of quantity * price over items.
func sumSubtotals(items []order.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// resolveTotal uses the order-level total under key when present and numeric,
// otherwise the sum of item subtotals.
func resolveTotal(payload order.Payload, key string, items []order.OrderItem) decimal.Decimal {
	if v := payload.First(key); v != nil {
		if d, ok := order.ParseDecimal(v); ok {
			return d
		}
	}
	return sumSubtotals(items)
}
