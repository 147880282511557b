package orders

import (
	"slices"
	"strings"
	"sync"

	"github.com/tectle/backend/internal/domain/order"
)

// OrderBook is the in-memory order collection behind the dashboard.
// Orders are kept newest first and identified by (lowercased platform, id).
// It is safe for concurrent use.
type OrderBook struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewOrderBook creates a book holding orders.
func NewOrderBook(orders ...order.Order) *OrderBook {
	b := &OrderBook{}
	b.Upsert(orders...)
	return b
}

// Upsert adds orders, superseding any order with the same key. A superseded
// order is replaced in place before the collection is re-sorted, so among
// orders created at the same instant the earliest key keeps its position.
func (b *OrderBook) Upsert(orders ...order.Order) (added, replaced int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	index := make(map[order.Key]int, len(b.orders))
	for i, o := range b.orders {
		index[o.Key()] = i
	}

	for _, o := range orders {
		key := o.Key()
		if i, ok := index[key]; ok {
			b.orders[i] = o
			replaced++
			continue
		}
		index[key] = len(b.orders)
		b.orders = append(b.orders, o)
		added++
	}

	b.orders = order.SortOrders(b.orders, true)
	return added, replaced
}

// Orders returns a copy of every order, newest first.
func (b *OrderBook) Orders() []order.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.orders)
}

// Len returns the number of orders held.
func (b *OrderBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// Filter returns the orders matching status and platform, newest first.
// Both comparisons ignore case; an empty filter matches everything.
func (b *OrderBook) Filter(status, platform string) []order.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FilterOrders(b.orders, status, platform)
}

// FilterOrders returns the orders of orders matching status and platform,
// sorted newest first.
func FilterOrders(orders []order.Order, status, platform string) []order.Order {
	status = strings.ToLower(status)
	platform = strings.ToLower(platform)

	filtered := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && strings.ToLower(o.Status) != status {
			continue
		}
		if platform != "" && strings.ToLower(o.Platform) != platform {
			continue
		}
		filtered = append(filtered, o)
	}
	return order.SortOrders(filtered, true)
}
