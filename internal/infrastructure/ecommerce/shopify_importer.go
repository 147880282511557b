package ecommerce

import (
	"strings"
	"time"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
)

// ShopifyImporter normalizes Shopify order payloads.
type ShopifyImporter struct {
	now func() time.Time
}

// NewShopifyImporter creates a Shopify importer
func NewShopifyImporter(opts ...Option) *ShopifyImporter {
	o := newImporterOptions(opts)
	return &ShopifyImporter{now: o.now}
}

// Platform implements integration.Importer
func (i *ShopifyImporter) Platform() string {
	return integration.PlatformCodeShopify.String()
}

// ParseOrder converts a Shopify order into an order.
// Status falls back from financial_status to fulfillment_status to "open";
// the fulfillment status itself is kept only when the payload carries one.
func (i *ShopifyImporter) ParseOrder(payload order.Payload) order.Order {
	customer := payload.Object("customer")
	currency := payload.StringOr(DefaultCurrency, "currency")

	lineItems := payload.Objects("line_items")
	items := make([]order.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		items = append(items, parseShopifyLineItem(li, currency))
	}

	createdAt, ok := parseZuluISO(payload.Get("created_at"))
	if !ok {
		createdAt = i.now()
	}

	email := customer.String("email")
	if email == "" {
		email = payload.String("email")
	}

	return order.Order{
		ID:                order.Stringify(payload.Get("id")),
		Platform:          i.Platform(),
		CreatedAt:         createdAt,
		CustomerName:      shopifyCustomerName(customer),
		CustomerEmail:     email,
		Status:            payload.StringOr("open", "financial_status", "fulfillment_status"),
		Currency:          currency,
		TotalPrice:        resolveTotal(payload, "total_price", items),
		Items:             items,
		FulfillmentStatus: payload.String("fulfillment_status"),
		RawPayload:        payload,
	}
}

// shopifyCustomerName joins first and last name, falling back to the customer's name field.
func shopifyCustomerName(customer order.Payload) string {
	if len(customer) == 0 {
		return ""
	}
	first := strings.TrimSpace(customer.String("first_name"))
	last := strings.TrimSpace(customer.String("last_name"))
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}
	return customer.String("name")
}

func parseShopifyLineItem(li order.Payload, defaultCurrency string) order.OrderItem {
	return order.OrderItem{
		SKU:      li.String("sku", "variant_id"),
		Name:     li.String("title"),
		Quantity: li.Int("quantity"),
		Price:    li.Decimal("price"),
		Currency: li.StringOr(defaultCurrency, "currency"),
		Metadata: map[string]string{
			"variant_title":      li.String("variant_title"),
			"fulfillment_status": li.String("fulfillment_status"),
		},
	}
}
