package sample

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
)

// Predefined value pools so generated orders look like real exports.
var (
	etsyStatuses        = []string{"open", "open", "processing", "completed", "closed"}
	etsyFulfillments    = []string{"processing", "shipped", "delivered", ""}
	shopifyFinancial    = []string{"paid", "paid", "pending", "authorized", "refunded"}
	shopifyFulfillments = []string{"fulfilled", "partial", "unfulfilled", ""}
	shopifyCurrencies   = []string{"USD", "USD", "USD", "EUR", "GBP", "CAD"}
	variantTitles       = []string{"Small", "Medium", "Large", "Default Title"}
)

// Generator builds random but structurally valid platform payloads.
// A Generator is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	start time.Time
	end   time.Time
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithDateRange bounds the creation times of generated orders.
func WithDateRange(start, end time.Time) GeneratorOption {
	return func(g *Generator) {
		if end.After(start) {
			g.start, g.end = start, end
		}
	}
}

// NewGenerator creates a generator. The same non-zero seed always yields the
// same payloads; seed 0 picks a random one.
func NewGenerator(seed uint64, opts ...GeneratorOption) *Generator {
	end := time.Now().UTC().Truncate(time.Second)
	g := &Generator{
		faker: gofakeit.New(seed),
		start: end.AddDate(0, -1, 0),
		end:   end,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Batches generates etsy Etsy receipts and shopify Shopify orders.
func (g *Generator) Batches(etsy, shopify int) integration.PlatformBatches {
	var batches integration.PlatformBatches
	if etsy > 0 {
		batches.Set(integration.PlatformCodeEtsy.String(), g.EtsyOrders(etsy))
	}
	if shopify > 0 {
		batches.Set(integration.PlatformCodeShopify.String(), g.ShopifyOrders(shopify))
	}
	return batches
}

// EtsyOrders generates n Etsy receipts with ids ETSY-2001, ETSY-2002, ...
func (g *Generator) EtsyOrders(n int) []order.Payload {
	out := make([]order.Payload, 0, n)
	for i := range n {
		out = append(out, g.etsyOrder(2001+i))
	}
	return out
}

func (g *Generator) etsyOrder(seq int) order.Payload {
	f := g.faker
	itemCount := f.Number(1, 3)

	transactions := make([]order.Payload, 0, itemCount)
	total := decimal.Zero
	for range itemCount {
		quantity := f.Number(1, 4)
		price := g.price(3, 60)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		transactions = append(transactions, order.Payload{
			"transaction_id": f.Number(100000000, 999999999),
			"listing_id":     fmt.Sprintf("SKU-%s", f.DigitN(5)),
			"title":          f.ProductName(),
			"quantity":       quantity,
			"price":          price.StringFixed(2),
		})
	}

	p := order.Payload{
		"receipt_id":    fmt.Sprintf("ETSY-%d", seq),
		"creation_tsz":  g.createdAt().Unix(),
		"status":        f.RandomString(etsyStatuses),
		"currency_code": "USD",
		"buyer":         order.Payload{"name": f.Name(), "email": f.Email()},
		"transactions":  transactions,
		"grandtotal":    total.StringFixed(2),
	}
	if fulfillment := f.RandomString(etsyFulfillments); fulfillment != "" {
		p["fulfillment_status"] = fulfillment
	} else {
		p["was_paid"] = f.Bool()
	}
	return p
}

// ShopifyOrders generates n Shopify orders with numeric ids 10001, 10002, ...
func (g *Generator) ShopifyOrders(n int) []order.Payload {
	out := make([]order.Payload, 0, n)
	for i := range n {
		out = append(out, g.shopifyOrder(10001+i))
	}
	return out
}

func (g *Generator) shopifyOrder(id int) order.Payload {
	f := g.faker
	currency := f.RandomString(shopifyCurrencies)
	itemCount := f.Number(1, 3)

	lineItems := make([]order.Payload, 0, itemCount)
	total := decimal.Zero
	for range itemCount {
		quantity := f.Number(1, 5)
		price := g.price(2, 80)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		lineItems = append(lineItems, order.Payload{
			"sku":           fmt.Sprintf("SKU-%s", f.DigitN(5)),
			"title":         f.ProductName(),
			"variant_title": f.RandomString(variantTitles),
			"quantity":      quantity,
			"price":         price.StringFixed(2),
		})
	}

	p := order.Payload{
		"id":               id,
		"created_at":       g.createdAt().Format("2006-01-02T15:04:05Z"),
		"financial_status": f.RandomString(shopifyFinancial),
		"currency":         currency,
		"customer": order.Payload{
			"first_name": f.FirstName(),
			"last_name":  f.LastName(),
			"email":      f.Email(),
		},
		"line_items":  lineItems,
		"total_price": total.StringFixed(2),
	}
	if fulfillment := f.RandomString(shopifyFulfillments); fulfillment != "" {
		p["fulfillment_status"] = fulfillment
	}
	return p
}

func (g *Generator) createdAt() time.Time {
	return g.faker.DateRange(g.start, g.end).UTC().Truncate(time.Second)
}

func (g *Generator) price(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(g.faker.Price(min, max)).Round(2)
}
