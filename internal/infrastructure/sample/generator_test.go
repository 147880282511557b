package sample_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/infrastructure/sample"
)

var (
	rangeStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
)

func TestGenerator_SameSeedSamePayloads(t *testing.T) {
	a, err := json.Marshal(sample.NewGenerator(42, sample.WithDateRange(rangeStart, rangeEnd)).Batches(3, 2))
	require.NoError(t, err)
	b, err := json.Marshal(sample.NewGenerator(42, sample.WithDateRange(rangeStart, rangeEnd)).Batches(3, 2))
	require.NoError(t, err)

	assert.JSONEq(t, string(a), string(b))
}

func TestGenerator_Batches(t *testing.T) {
	g := sample.NewGenerator(7, sample.WithDateRange(rangeStart, rangeEnd))

	batches := g.Batches(4, 0)
	assert.Equal(t, []string{"etsy"}, batches.Platforms())
	assert.Equal(t, 4, batches.TotalOrders())
	etsy, ok := batches.Get("etsy")
	require.True(t, ok)
	assert.Equal(t, "ETSY-2001", etsy[0]["receipt_id"])
	assert.Equal(t, "ETSY-2004", etsy[3]["receipt_id"])
}

func TestGenerator_RoundTripsThroughImporters(t *testing.T) {
	g := sample.NewGenerator(99, sample.WithDateRange(rangeStart, rangeEnd))

	data, err := json.Marshal(g.Batches(5, 5))
	require.NoError(t, err)

	var batches integration.PlatformBatches
	require.NoError(t, json.Unmarshal(data, &batches))

	imported, err := orders.NewOrderService().ImportAll(batches)
	require.NoError(t, err)
	require.Len(t, imported, 10)

	for _, o := range imported {
		assert.NotEmpty(t, o.ID)
		assert.NotEmpty(t, o.CustomerName)
		assert.NotEmpty(t, o.Items)
		assert.False(t, o.CreatedAt.Before(rangeStart), o.ID)
		assert.False(t, o.CreatedAt.After(rangeEnd), o.ID)

		itemTotal := o.Items[0].Subtotal()
		for _, item := range o.Items[1:] {
			itemTotal = itemTotal.Add(item.Subtotal())
		}
		assert.True(t, itemTotal.Equal(o.TotalPrice), "%s total %s != items %s", o.ID, o.TotalPrice, itemTotal)
	}
}
