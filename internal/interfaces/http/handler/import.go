package handler

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/domain/integration"
	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/infrastructure/ecommerce"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/infrastructure/telemetry"
)

// HoldingsRecorder receives the number of orders held after each import
type HoldingsRecorder interface {
	RecordOrdersHeld(ctx context.Context, n int)
}

// ImportResult describes one uploaded batch after it reached the order book
type ImportResult struct {
	BatchID  uuid.UUID
	Platform string
	Received int
	Added    int
	Replaced int
	Held     int
	Orders   []order.Order
}

// OrderImporter runs uploaded documents through ParseUpload, the importer
// registry and the order book. The dashboard form and the JSON API share it.
type OrderImporter struct {
	service  *orders.OrderService
	book     *orders.OrderBook
	holdings HoldingsRecorder
}

// NewOrderImporter creates an OrderImporter. holdings may be nil.
func NewOrderImporter(service *orders.OrderService, book *orders.OrderBook, holdings HoldingsRecorder) *OrderImporter {
	return &OrderImporter{
		service:  service,
		book:     book,
		holdings: holdings,
	}
}

// CheckPlatform returns a NOT_FOUND domain error when no importer handles platform
func (i *OrderImporter) CheckPlatform(platform string) error {
	_, err := i.service.Importer(platform)
	return err
}

// Import parses data as an upload for platform and upserts the resulting orders.
func (i *OrderImporter) Import(ctx context.Context, platform string, data []byte) (*ImportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "orders.import", telemetry.SpanAttrPlatform.String(platform))
	defer span.End()

	if err := i.CheckPlatform(platform); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	key := integration.NormalizePlatform(platform).String()
	batchID := uuid.New()
	ctx, log := logger.WithImportBatch(ctx, key, batchID.String())
	span.SetAttributes(telemetry.SpanAttrBatchID.String(batchID.String()))

	raw, err := ecommerce.ParseUpload(data, key)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Warn("Rejected order upload", zap.Int("bytes", len(data)), zap.Error(err))
		return nil, err
	}

	imported, err := i.service.ImportOrders(key, raw)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Warn("Import failed", zap.Error(err))
		return nil, err
	}

	added, replaced := i.book.Upsert(imported...)
	held := i.book.Len()
	if i.holdings != nil {
		i.holdings.RecordOrdersHeld(ctx, held)
	}

	result := &ImportResult{
		BatchID:  batchID,
		Platform: key,
		Received: len(raw),
		Added:    added,
		Replaced: replaced,
		Held:     held,
		Orders:   imported,
	}

	telemetry.RecordImport(span, len(imported), added, replaced)

	log.Info("Orders imported",
		zap.Int("received", result.Received),
		zap.Int("added", added),
		zap.Int("replaced", replaced),
		zap.Int("held", held),
	)
	return result, nil
}
