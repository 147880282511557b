package ecommerce

import (
	"bytes"
	"encoding/json"

	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/domain/shared"
)

// Upload errors
var (
	ErrUploadEmpty     = shared.NewDomainError("INVALID_INPUT", "uploaded file is empty")
	ErrUploadMalformed = shared.NewDomainError("INVALID_INPUT", "unable to decode payload as JSON")
	ErrUploadShape     = shared.NewDomainError("INVALID_INPUT", "expected a sequence of orders in the uploaded file")
	ErrUploadNoOrders  = shared.NewDomainError("INVALID_INPUT", "no valid orders found in upload")
)

// ParseUpload extracts raw orders from an uploaded JSON document. Accepted shapes:
//
//	[{...}, {...}]
//	{"orders": [{...}]}
//	{"<platform>": [{...}]}
//
// Elements that are not JSON objects are dropped. Numbers are kept as json.Number.
func ParseUpload(data []byte, platform string) ([]order.Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, ErrUploadMalformed
	}

	var elements []any
	switch v := parsed.(type) {
	case []any:
		elements = v
	case map[string]any:
		if list, ok := v["orders"].([]any); ok {
			elements = list
		} else if list, ok := v[platform].([]any); ok && platform != "" {
			elements = list
		} else {
			return nil, ErrUploadShape
		}
	default:
		return nil, ErrUploadShape
	}

	payloads := make([]order.Payload, 0, len(elements))
	for _, elem := range elements {
		if m, ok := elem.(map[string]any); ok {
			payloads = append(payloads, order.Payload(m))
		}
	}
	if len(payloads) == 0 {
		return nil, ErrUploadNoOrders
	}
	return payloads, nil
}
