package order

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status values that mark an order as still requiring action.
var openStatuses = map[string]struct{}{
	"open":        {},
	"unfulfilled": {},
	"processing":  {},
}

// FulfillmentUnfulfilled is the grouping key used for orders without a fulfillment status.
const FulfillmentUnfulfilled = "unfulfilled"

// createdAtLayout mirrors ISO-8601 with a numeric offset ("+00:00" rather than "Z").
const (
	createdAtLayout       = "2006-01-02T15:04:05-07:00"
	createdAtLayoutMicros = "2006-01-02T15:04:05.000000-07:00"
)

// OrderItem is a single purchased line within an order.
type OrderItem struct {
	SKU      string
	Name     string
	Quantity int
	Price    decimal.Decimal // per unit
	Currency string
	Metadata map[string]string
}

// Subtotal returns Quantity * Price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AsMap serializes the item to a plain string-keyed mapping.
func (i OrderItem) AsMap() map[string]any {
	metadata := make(map[string]string, len(i.Metadata))
	maps.Copy(metadata, i.Metadata)
	return map[string]any{
		"sku":      i.SKU,
		"name":     i.Name,
		"quantity": i.Quantity,
		"price":    i.Price.InexactFloat64(),
		"currency": i.Currency,
		"metadata": metadata,
	}
}

// Key identifies an order across platforms. Order ids are only unique per platform.
type Key struct {
	Platform string
	ID       string
}

// Order is a purchase normalized from any sales channel. Orders are built once
// by an importer and treated as values afterwards; a re-import supersedes the
// previous instance instead of mutating it.
type Order struct {
	ID            string
	Platform      string
	CreatedAt     time.Time
	CustomerName  string
	CustomerEmail string
	Status        string
	Currency      string
	TotalPrice    decimal.Decimal
	Items         []OrderItem
	// FulfillmentStatus is empty when the source did not provide one.
	FulfillmentStatus string
	RawPayload        Payload
}

// Key returns the (platform, id) identity of the order.
func (o Order) Key() Key {
	return Key{Platform: strings.ToLower(o.Platform), ID: o.ID}
}

// IsOpen reports whether the order is in a state that requires action.
func (o Order) IsOpen() bool {
	_, ok := openStatuses[strings.ToLower(o.Status)]
	return ok
}

// TotalQuantity returns the sum of item quantities.
func (o Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// FulfillmentKey returns the lowercased fulfillment status, or "unfulfilled" when absent.
func (o Order) FulfillmentKey() string {
	if o.FulfillmentStatus == "" {
		return FulfillmentUnfulfilled
	}
	return strings.ToLower(o.FulfillmentStatus)
}

// CreatedAtISO formats CreatedAt as ISO-8601 with a numeric UTC offset.
// Sub-second precision is written only when present.
func (o Order) CreatedAtISO() string {
	if o.CreatedAt.Nanosecond()/int(time.Microsecond) != 0 {
		return o.CreatedAt.Format(createdAtLayoutMicros)
	}
	return o.CreatedAt.Format(createdAtLayout)
}

// AsMap serializes the order for presentation layers. The raw payload is not
// included; fulfillment_status is nil when absent.
func (o Order) AsMap() map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.AsMap())
	}

	var fulfillment any
	if o.FulfillmentStatus != "" {
		fulfillment = o.FulfillmentStatus
	}

	return map[string]any{
		"id":                 o.ID,
		"platform":           o.Platform,
		"created_at":         o.CreatedAtISO(),
		"customer_name":      o.CustomerName,
		"customer_email":     o.CustomerEmail,
		"status":             o.Status,
		"currency":           o.Currency,
		"total_price":        o.TotalPrice.InexactFloat64(),
		"items":              items,
		"fulfillment_status": fulfillment,
	}
}

// MarshalJSON encodes the order using its AsMap representation.
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.AsMap())
}
