package ecommerce

import (
	"time"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
)

// EtsyImporter normalizes Etsy receipt payloads.
type EtsyImporter struct {
	now func() time.Time
}

// NewEtsyImporter creates an Etsy importer
func NewEtsyImporter(opts ...Option) *EtsyImporter {
	o := newImporterOptions(opts)
	return &EtsyImporter{now: o.now}
}

// Platform implements integration.Importer
func (i *EtsyImporter) Platform() string {
	return integration.PlatformCodeEtsy.String()
}

// ParseOrder converts an Etsy receipt into an order.
//
// Field resolution:
//   - id: receipt_id, else order_id
//   - customer: buyer.name, else buyer.username; email from buyer.email
//   - created_at: creation_tsz as epoch seconds (number or digit string) or ISO-8601, else now
//   - status: status, default "open"; currency: currency_code, default "USD"
//   - total: grandtotal, else the sum of transaction subtotals
//   - fulfillment: fulfillment_status, else was_paid, else "pending"
func (i *EtsyImporter) ParseOrder(payload order.Payload) order.Order {
	buyer := payload.Object("buyer")
	currency := payload.StringOr(DefaultCurrency, "currency_code")

	transactions := payload.Objects("transactions")
	items := make([]order.OrderItem, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, parseEtsyTransaction(tx, currency))
	}

	createdAt, ok := parseEpochOrISO(payload.Get("creation_tsz"))
	if !ok {
		createdAt = i.now()
	}

	return order.Order{
		ID:                payload.String("receipt_id", "order_id"),
		Platform:          i.Platform(),
		CreatedAt:         createdAt,
		CustomerName:      buyer.String("name", "username"),
		CustomerEmail:     buyer.String("email"),
		Status:            payload.StringOr("open", "status"),
		Currency:          currency,
		TotalPrice:        resolveTotal(payload, "grandtotal", items),
		Items:             items,
		FulfillmentStatus: payload.StringOr("pending", "fulfillment_status", "was_paid"),
		RawPayload:        payload,
	}
}

func parseEtsyTransaction(tx order.Payload, defaultCurrency string) order.OrderItem {
	return order.OrderItem{
		SKU:      tx.String("product_id", "listing_id"),
		Name:     tx.String("title", "name"),
		Quantity: tx.Int("quantity"),
		Price:    tx.Decimal("price", "transaction_total"),
		Currency: tx.StringOr(defaultCurrency, "currency_code"),
		Metadata: map[string]string{
			"transaction_id": tx.String("transaction_id"),
		},
	}
}
