package sample

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tectle/backend/internal/domain/integration"
)

// Load reads platform keyed payloads from the JSON file at path:
//
//	{"etsy": [{...}], "shopify": [{...}]}
//
// An empty path returns the demo data set.
func Load(path string) (integration.PlatformBatches, error) {
	if path == "" {
		return Payloads(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return integration.PlatformBatches{}, fmt.Errorf("read payload file: %w", err)
	}

	var batches integration.PlatformBatches
	if err := json.Unmarshal(data, &batches); err != nil {
		return integration.PlatformBatches{}, fmt.Errorf("decode payload file %s: %w", path, err)
	}
	return batches, nil
}
