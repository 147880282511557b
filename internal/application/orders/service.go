package orders

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/infrastructure/ecommerce"
)

// ImportObserver is notified after every successful import batch.
type ImportObserver interface {
	ObserveImport(platform string, orders []order.Order)
}

// ServiceOption configures an OrderService
type ServiceOption func(*OrderService)

// WithImporters replaces the default Etsy/Shopify registry with importers.
// Keys are lowercased. The map is copied.
func WithImporters(importers map[string]integration.Importer) ServiceOption {
	return func(s *OrderService) {
		s.importers = make(map[integration.PlatformCode]integration.Importer, len(importers))
		for key, imp := range importers {
			s.importers[integration.NormalizePlatform(key)] = imp
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *OrderService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithImportObserver registers an observer called after each import batch
func WithImportObserver(observer ImportObserver) ServiceOption {
	return func(s *OrderService) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// OrderService routes raw payloads to platform importers and hands the
// resulting orders to the organizer.
//
// OrderService does no locking. RegisterImporter and AddImporter mutate the
// registry, so a service shared between goroutines must have those calls
// serialized by the caller; concurrent imports alone are safe.
type OrderService struct {
	importers map[integration.PlatformCode]integration.Importer
	logger    *zap.Logger
	observers []ImportObserver
}

// NewOrderService creates an OrderService. Without WithImporters it starts
// with a fresh registry holding the Etsy and Shopify importers.
func NewOrderService(opts ...ServiceOption) *OrderService {
	s := &OrderService{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.importers == nil {
		s.importers = make(map[integration.PlatformCode]integration.Importer)
		for key, imp := range ecommerce.DefaultImporters() {
			s.importers[integration.NormalizePlatform(key)] = imp
		}
	}
	return s
}

// RegisterImporter installs importer under its lowercased platform key,
// replacing any importer already registered for that platform.
func (s *OrderService) RegisterImporter(importer integration.Importer) error {
	key, err := importerKey(importer)
	if err != nil {
		return err
	}
	_, replaced := s.importers[key]
	s.importers[key] = importer
	s.logger.Info("Importer registered",
		zap.String("platform", key.String()),
		zap.Bool("replaced", replaced),
	)
	return nil
}

// AddImporter installs importer only if its platform has no importer yet.
func (s *OrderService) AddImporter(importer integration.Importer) error {
	key, err := importerKey(importer)
	if err != nil {
		return err
	}
	if _, exists := s.importers[key]; exists {
		return integration.NewImporterConflictError(key.String())
	}
	return s.RegisterImporter(importer)
}

func importerKey(importer integration.Importer) (integration.PlatformCode, error) {
	if importer == nil {
		return "", integration.ErrImporterInvalid
	}
	key := integration.NormalizePlatform(importer.Platform())
	if key == "" {
		return "", integration.ErrImporterInvalid
	}
	return key, nil
}

// Importer returns the importer registered for platform (case-insensitive).
func (s *OrderService) Importer(platform string) (integration.Importer, error) {
	imp, ok := s.importers[integration.NormalizePlatform(platform)]
	if !ok {
		return nil, integration.NewImporterNotFoundError(platform)
	}
	return imp, nil
}

// Platforms returns the registered platform keys, sorted.
func (s *OrderService) Platforms() []string {
	keys := make([]string, 0, len(s.importers))
	for key := range maps.Keys(s.importers) {
		keys = append(keys, key.String())
	}
	slices.Sort(keys)
	return keys
}

// ImportOrders normalizes raw orders with the importer registered for platform.
// Orders are returned in input order. An unknown platform yields a NOT_FOUND
// domain error naming the platform.
func (s *OrderService) ImportOrders(platform string, raw []order.Payload) ([]order.Order, error) {
	imp, err := s.Importer(platform)
	if err != nil {
		return nil, err
	}

	orders := integration.ImportOrders(imp, raw)
	s.logger.Debug("Orders imported",
		zap.String("platform", imp.Platform()),
		zap.Int("count", len(orders)),
	)
	for _, observer := range s.observers {
		observer.ObserveImport(imp.Platform(), orders)
	}
	return orders, nil
}

// ImportAll imports every platform batch in order and returns the combined
// orders sorted by creation time, oldest first. Orders created at the same
// instant keep batch order, then payload order. The first unknown platform
// aborts the whole import.
func (s *OrderService) ImportAll(batches integration.PlatformBatches) ([]order.Order, error) {
	for _, batch := range batches {
		if _, err := s.Importer(batch.Platform); err != nil {
			return nil, err
		}
	}

	all := make([]order.Order, 0, batches.TotalOrders())
	for _, batch := range batches {
		imported, err := s.ImportOrders(batch.Platform, batch.Orders)
		if err != nil {
			return nil, err
		}
		all = append(all, imported...)
	}
	return order.SortOrders(all, false), nil
}

// OrganizeByStatus groups orders by lowercased status.
func (s *OrderService) OrganizeByStatus(orders []order.Order) order.Grouping {
	return order.GroupByStatus(orders)
}

// Report builds the summary report for orders.
func (s *OrderService) Report(orders []order.Order) order.Report {
	return order.BuildReport(orders)
}
