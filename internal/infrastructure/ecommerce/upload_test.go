package ecommerce

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/domain/shared"
)

func TestParseUpload(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		platform string
		wantIDs  []string
		wantErr  error
	}{
		{name: "bare array", data: `[{"receipt_id": "1"}, {"receipt_id": "2"}]`, platform: "etsy", wantIDs: []string{"1", "2"}},
		{name: "orders wrapper", data: `{"orders": [{"receipt_id": "3"}]}`, platform: "etsy", wantIDs: []string{"3"}},
		{name: "platform wrapper", data: `{"etsy": [{"receipt_id": "4"}]}`, platform: "etsy", wantIDs: []string{"4"}},
		{name: "non objects dropped", data: `[1, "x", {"receipt_id": "5"}, null]`, platform: "etsy", wantIDs: []string{"5"}},
		{name: "empty", data: "  \n", platform: "etsy", wantErr: ErrUploadEmpty},
		{name: "malformed", data: `{"orders": [`, platform: "etsy", wantErr: ErrUploadMalformed},
		{name: "wrong platform key", data: `{"shopify": [{"id": 1}]}`, platform: "etsy", wantErr: ErrUploadShape},
		{name: "scalar", data: `42`, platform: "etsy", wantErr: ErrUploadShape},
		{name: "orders not a list", data: `{"orders": {"receipt_id": "1"}}`, platform: "etsy", wantErr: ErrUploadShape},
		{name: "no objects", data: `[1, 2, 3]`, platform: "etsy", wantErr: ErrUploadNoOrders},
		{name: "empty list", data: `[]`, platform: "etsy", wantErr: ErrUploadNoOrders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloads, err := ParseUpload([]byte(tt.data), tt.platform)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Same(t, tt.wantErr, err)
				assert.True(t, errors.Is(err, shared.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(payloads))
			for _, p := range payloads {
				ids = append(ids, p.String("receipt_id"))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseUpload_KeepsNumberPrecision(t *testing.T) {
	payloads, err := ParseUpload([]byte(`[{"id": 4500000000000123}]`), "shopify")
	require.NoError(t, err)

	assert.Equal(t, json.Number("4500000000000123"), payloads[0]["id"])
	assert.Equal(t, "4500000000000123", NewShopifyImporter().ParseOrder(payloads[0]).ID)
}
