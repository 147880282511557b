package order

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Organizer functions are pure: they never modify their inputs and build
// fresh results on every call.

// Grouping partitions orders by a string key. Keys are kept in the order they
// were first seen and each group keeps the relative order of the input.
type Grouping struct {
	Keys   []string
	Orders map[string][]Order
}

func newGrouping() Grouping {
	return Grouping{Orders: make(map[string][]Order)}
}

func (g *Grouping) add(key string, o Order) {
	if _, ok := g.Orders[key]; !ok {
		g.Keys = append(g.Keys, key)
	}
	g.Orders[key] = append(g.Orders[key], o)
}

// Len returns the number of groups.
func (g Grouping) Len() int {
	return len(g.Keys)
}

// Get returns the orders of one group.
func (g Grouping) Get(key string) []Order {
	return g.Orders[key]
}

// Counts returns the number of orders per group.
func (g Grouping) Counts() map[string]int {
	counts := make(map[string]int, len(g.Keys))
	for _, key := range g.Keys {
		counts[key] = len(g.Orders[key])
	}
	return counts
}

// GroupByStatus partitions orders by lowercased status.
func GroupByStatus(orders []Order) Grouping {
	g := newGrouping()
	for _, o := range orders {
		g.add(strings.ToLower(o.Status), o)
	}
	return g
}

// GroupByFulfillment partitions orders by lowercased fulfillment status.
// Orders without one are grouped under "unfulfilled".
func GroupByFulfillment(orders []Order) Grouping {
	g := newGrouping()
	for _, o := range orders {
		g.add(o.FulfillmentKey(), o)
	}
	return g
}

// SortOrders returns a copy of orders sorted by creation time, oldest first,
// or newest first when reverse is set. Orders created at the same instant keep
// their input order in both directions.
func SortOrders(orders []Order, reverse bool) []Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b Order) int {
		if reverse {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

// OrderSummary is an aggregate snapshot over a set of orders.
type OrderSummary struct {
	TotalOrders  int             `json:"total_orders"`
	OpenOrders   int             `json:"open_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalItems   int             `json:"total_items"`
}

// MarshalJSON writes total_revenue as a JSON number.
func (s OrderSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalOrders  int     `json:"total_orders"`
		OpenOrders   int     `json:"open_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TotalItems   int     `json:"total_items"`
	}{
		TotalOrders:  s.TotalOrders,
		OpenOrders:   s.OpenOrders,
		TotalRevenue: s.TotalRevenue.InexactFloat64(),
		TotalItems:   s.TotalItems,
	})
}

// Summarize computes an OrderSummary in a single pass. Revenue is summed
// exactly and rounded half away from zero to two decimal places.
func Summarize(orders []Order) OrderSummary {
	summary := OrderSummary{TotalRevenue: decimal.Zero}
	for _, o := range orders {
		summary.TotalOrders++
		summary.TotalRevenue = summary.TotalRevenue.Add(o.TotalPrice)
		summary.TotalItems += o.TotalQuantity()
		if o.IsOpen() {
			summary.OpenOrders++
		}
	}
	summary.TotalRevenue = summary.TotalRevenue.Round(2)
	return summary
}

// Report is the structured summary handed to presentation layers.
type Report struct {
	Summary       OrderSummary   `json:"summary"`
	ByStatus      map[string]int `json:"by_status"`
	ByFulfillment map[string]int `json:"by_fulfillment"`
}

// BuildReport summarizes orders and counts them per status and fulfillment status.
func BuildReport(orders []Order) Report {
	return Report{
		Summary:       Summarize(orders),
		ByStatus:      GroupByStatus(orders).Counts(),
		ByFulfillment: GroupByFulfillment(orders).Counts(),
	}
}
