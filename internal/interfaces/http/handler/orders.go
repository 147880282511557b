package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/domain/order"
	"github.com/tectle/backend/internal/interfaces/http/dto"
)

// OrderHandler serves the JSON order API
type OrderHandler struct {
	BaseHandler
	service  *orders.OrderService
	book     *orders.OrderBook
	importer *OrderImporter
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *orders.OrderService, book *orders.OrderBook, importer *OrderImporter) *OrderHandler {
	return &OrderHandler{
		service:  service,
		book:     book,
		importer: importer,
	}
}

// List returns held orders newest first, filtered by status and platform.
//
//	GET /api/v1/orders?status=&platform=&page=&page_size=
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.OrderListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Normalize()

	filtered := h.book.Filter(req.Status, req.Platform)
	start, end := req.Bounds(len(filtered))
	h.SuccessWithMeta(c, filtered[start:end], int64(len(filtered)), req.Page, req.PageSize)
}

// Report returns the summary report of the filtered orders.
//
//	GET /api/v1/orders/report?status=&platform=
func (h *OrderHandler) Report(c *gin.Context) {
	var req dto.OrderFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}
	h.Success(c, h.service.Report(h.book.Filter(req.Status, req.Platform)))
}

// ByStatus returns the filtered orders grouped by status in first-seen order.
//
//	GET /api/v1/orders/by-status?platform=
func (h *OrderHandler) ByStatus(c *gin.Context) {
	var req dto.OrderFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	// Oldest first so groups appear in the order statuses first occurred
	filtered := order.SortOrders(h.book.Filter(req.Status, req.Platform), false)
	grouping := h.service.OrganizeByStatus(filtered)

	groups := make([]dto.StatusGroup, 0, grouping.Len())
	for _, key := range grouping.Keys {
		members := grouping.Get(key)
		groups = append(groups, dto.StatusGroup{
			Status: key,
			Count:  len(members),
			Orders: members,
		})
	}
	h.Success(c, groups)
}

// Platforms lists the registered importer platforms.
//
//	GET /api/v1/orders/platforms
func (h *OrderHandler) Platforms(c *gin.Context) {
	h.Success(c, dto.PlatformsResponse{Platforms: h.service.Platforms()})
}

// Import imports the JSON request body for a platform.
//
//	POST /api/v1/orders/import/:platform
func (h *OrderHandler) Import(c *gin.Context) {
	var uri dto.PlatformURI
	if !h.BindURI(c, &uri) {
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.importer.Import(c.Request.Context(), uri.Platform, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.ImportResponse{
		BatchID:  result.BatchID.String(),
		Platform: result.Platform,
		Received: result.Received,
		Added:    result.Added,
		Replaced: result.Replaced,
		Held:     result.Held,
		Orders:   result.Orders,
	})
}
