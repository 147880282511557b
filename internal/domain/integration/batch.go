package integration

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/domain/shared"
)

// ErrInvalidBatches is returned when a batch document is not a JSON object of arrays.
var ErrInvalidBatches = shared.NewDomainError("INVALID_INPUT", "integration: payload must be an object mapping platforms to order arrays")

// PlatformBatch is the raw order collection of one platform.
type PlatformBatch struct {
	Platform string
	Orders   []order.Payload
}

// PlatformBatches maps platforms to raw orders while keeping the order in which
// platforms were supplied. Multi-platform imports iterate batches in this order,
// so it also decides how orders created at the same instant are tie-broken.
type PlatformBatches []PlatformBatch

// Set stores orders for platform. An existing platform keeps its position and
// has its orders replaced.
func (b *PlatformBatches) Set(platform string, orders []order.Payload) {
	for i := range *b {
		if (*b)[i].Platform == platform {
			(*b)[i].Orders = orders
			return
		}
	}
	*b = append(*b, PlatformBatch{Platform: platform, Orders: orders})
}

// Get returns the orders stored for platform.
func (b PlatformBatches) Get(platform string) ([]order.Payload, bool) {
	for _, batch := range b {
		if batch.Platform == platform {
			return batch.Orders, true
		}
	}
	return nil, false
}

// Platforms returns the platform keys in insertion order.
func (b PlatformBatches) Platforms() []string {
	out := make([]string, 0, len(b))
	for _, batch := range b {
		out = append(out, batch.Platform)
	}
	return out
}

// TotalOrders returns the number of raw orders across all platforms.
func (b PlatformBatches) TotalOrders() int {
	total := 0
	for _, batch := range b {
		total += len(batch.Orders)
	}
	return total
}

// MarshalJSON writes the batches as a JSON object, keys in insertion order.
func (b PlatformBatches) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, batch := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(batch.Platform)
		if err != nil {
			return nil, err
		}
		orders := batch.Orders
		if orders == nil {
			orders = []order.Payload{}
		}
		value, err := json.Marshal(orders)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of platform -> order array, keeping key order.
// Numbers are decoded as json.Number so large ids survive intact. Array elements
// that are not objects make the whole document invalid.
func (b *PlatformBatches) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidBatches
	}

	var out PlatformBatches
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		platform, ok := tok.(string)
		if !ok {
			return ErrInvalidBatches
		}

		var orders []order.Payload
		if err := dec.Decode(&orders); err != nil {
			return fmt.Errorf("integration: decode orders for platform %q: %w", platform, err)
		}
		out.Set(platform, orders)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = out
	return nil
}
