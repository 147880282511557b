package integration

import (
	"strings"

	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Importer Errors
// ---------------------------------------------------------------------------

var (
	// ErrImporterConflict is returned when adding an importer for a platform
	// that already has one registered.
	ErrImporterConflict = shared.NewDomainError("ALREADY_EXISTS", "integration: importer already registered")
	// ErrImporterInvalid is returned for a nil importer or one without a platform key.
	ErrImporterInvalid = shared.NewDomainError("INVALID_INPUT", "integration: importer must declare a platform")
)

// NewImporterNotFoundError reports that no importer handles the requested platform.
// The platform is quoted as the caller supplied it.
func NewImporterNotFoundError(platform string) *shared.DomainError {
	return shared.NewDomainErrorf("NOT_FOUND", "no importer registered for platform '%s'", platform)
}

// NewImporterConflictError reports that platform already has an importer.
func NewImporterConflictError(platform string) *shared.DomainError {
	return shared.NewDomainErrorf(ErrImporterConflict.Code, "importer for platform '%s' already registered", platform)
}

// ---------------------------------------------------------------------------
// PlatformCode represents a sales channel
// ---------------------------------------------------------------------------

// PlatformCode is the lowercase key identifying a sales channel.
type PlatformCode string

const (
	// PlatformCodeEtsy represents the Etsy marketplace
	PlatformCodeEtsy PlatformCode = "etsy"
	// PlatformCodeShopify represents Shopify stores
	PlatformCodeShopify PlatformCode = "shopify"
)

// NormalizePlatform lowercases a platform identifier into a registry key.
func NormalizePlatform(platform string) PlatformCode {
	return PlatformCode(strings.ToLower(strings.TrimSpace(platform)))
}

// IsBuiltin returns true for the channels shipped with the service
func (c PlatformCode) IsBuiltin() bool {
	switch c {
	case PlatformCodeEtsy, PlatformCodeShopify:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeEtsy:
		return "Etsy"
	case PlatformCodeShopify:
		return "Shopify"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Importer Port
// ---------------------------------------------------------------------------

// Importer translates one platform's raw order payloads into normalized orders.
// This interface follows the Ports & Adapters pattern - it's defined in the domain
// layer, and the Etsy and Shopify implementations are in the infrastructure layer.
//
// ParseOrder is a total function: a missing or malformed optional field resolves
// to a documented default instead of an error.
type Importer interface {
	// Platform returns the platform identifier this importer handles
	Platform() string

	// ParseOrder normalizes a single raw payload
	ParseOrder(payload order.Payload) order.Order
}

// ImportOrders applies imp.ParseOrder to every payload, preserving input order.
func ImportOrders(imp Importer, payloads []order.Payload) []order.Order {
	orders := make([]order.Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, imp.ParseOrder(p))
	}
	return orders
}

// ImporterFunc adapts a plain function to the Importer interface for a fixed platform.
type ImporterFunc struct {
	Code  string
	Parse func(order.Payload) order.Order
}

// Platform implements Importer
func (f ImporterFunc) Platform() string {
	return f.Code
}

// ParseOrder implements Importer
func (f ImporterFunc) ParseOrder(payload order.Payload) order.Order {
	return f.Parse(payload)
}
