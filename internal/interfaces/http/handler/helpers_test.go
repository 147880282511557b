package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/infrastructure/sample"
	"github.com/tectle/backend/internal/interfaces/http/dto"
	"github.com/tectle/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newSampleBook returns a book holding the four demo orders and the service
// that imported them.
func newSampleBook(t *testing.T) (*orders.OrderBook, *orders.OrderService) {
	t.Helper()

	svc := orders.NewOrderService()
	imported, err := svc.ImportAll(sample.Payloads())
	require.NoError(t, err)
	return orders.NewOrderBook(imported...), svc
}

// recordingHoldings collects RecordOrdersHeld calls
type recordingHoldings struct {
	mu     sync.Mutex
	counts []int
}

func (r *recordingHoldings) RecordOrdersHeld(_ context.Context, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, n)
}

func (r *recordingHoldings) Counts() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.counts...)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ids(orders []order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

// dataIDs extracts the "id" field of every order in a decoded JSON array
func dataIDs(t *testing.T, data any) []string {
	t.Helper()

	items, ok := data.([]any)
	require.True(t, ok, "expected a JSON array, got %T", data)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(map[string]any)["id"].(string))
	}
	return out
}
