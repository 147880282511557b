// Package sample provides order payloads for running the dashboard without
// real platform exports: a fixed demo set and a random generator.
package sample

import (
	"time"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
)

// Payloads returns the demo data set: two Etsy receipts and two Shopify orders.
func Payloads() integration.PlatformBatches {
	created := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

	var batches integration.PlatformBatches
	batches.Set(integration.PlatformCodeEtsy.String(), []order.Payload{
		{
			"receipt_id":    "ETSY-1001",
			"creation_tsz":  created.Unix(),
			"status":        "open",
			"currency_code": "USD",
			"buyer":         order.Payload{"name": "Ada Lovelace", "email": "ada@example.com"},
			"transactions": []order.Payload{
				{"listing_id": "SKU-1", "title": "Notebook", "quantity": 2, "price": "12.50"},
				{"listing_id": "SKU-2", "title": "Pen Set", "quantity": 1, "price": "8.00"},
			},
			"grandtotal":         "33.00",
			"fulfillment_status": "processing",
		},
		{
			"receipt_id":    "ETSY-1002",
			"creation_tsz":  created.AddDate(0, 0, -1).Unix(),
			"status":        "closed",
			"currency_code": "USD",
			"buyer":         order.Payload{"name": "Katherine Johnson", "email": "kj@example.com"},
			"transactions": []order.Payload{
				{"listing_id": "SKU-3", "title": "Planner", "quantity": 1, "price": "18.00"},
			},
			"grandtotal":         "18.00",
			"fulfillment_status": "shipped",
		},
	})
	batches.Set(integration.PlatformCodeShopify.String(), []order.Payload{
		{
			"id":               456,
			"created_at":       "2024-05-08T09:15:00Z",
			"financial_status": "paid",
			"currency":         "USD",
			"customer": order.Payload{
				"first_name": "Grace",
				"last_name":  "Hopper",
				"email":      "grace@example.com",
			},
			"line_items": []order.Payload{
				{"sku": "SKU-4", "title": "Sticker Pack", "quantity": 3, "price": "4.00"},
			},
			"total_price":        "12.00",
			"fulfillment_status": "fulfilled",
		},
		{
			"id":               789,
			"created_at":       "2024-05-11T11:45:00Z",
			"financial_status": "pending",
			"currency":         "USD",
			"customer": order.Payload{
				"first_name": "Margaret",
				"last_name":  "Hamilton",
				"email":      "margaret@example.com",
			},
			"line_items": []order.Payload{
				{"sku": "SKU-5", "title": "Algorithm Poster", "quantity": 1, "price": "25.00"},
			},
			"total_price":        "25.00",
			"fulfillment_status": "unfulfilled",
		},
	})
	return batches
}
