package dto

import "github.com/tectle/backend/internal/domain/order"

// OrderFilterRequest holds the case-insensitive order filters shared by the
// dashboard, the order list and the report
type OrderFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,max=64"`
	Platform string `form:"platform" binding:"omitempty,max=64"`
}

// OrderListRequest represents the order list query parameters
type OrderListRequest struct {
	OrderFilterRequest
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// Normalize fills in the default page and page size
func (r *OrderListRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
}

// Bounds returns the slice bounds of the requested page within total items.
// Pages past the end, however large, yield an empty range at total.
func (r OrderListRequest) Bounds(total int) (start, end int) {
	if r.PageSize <= 0 {
		return total, total
	}
	pages := total / r.PageSize
	if total%r.PageSize > 0 {
		pages++
	}
	page := max(r.Page, 1)
	if page > pages {
		return total, total
	}
	start = (page - 1) * r.PageSize
	end = min(start+r.PageSize, total)
	return start, end
}

// PlatformURI represents the :platform path parameter of import routes
type PlatformURI struct {
	Platform string `uri:"platform" binding:"required,max=64,platform_key"`
}

// ImportResponse represents the result of one import batch
type ImportResponse struct {
	BatchID  string        `json:"batch_id"`
	Platform string        `json:"platform"`
	Received int           `json:"received"`
	Added    int           `json:"added"`
	Replaced int           `json:"replaced"`
	Held     int           `json:"held"`
	Orders   []order.Order `json:"orders"`
}

// PlatformsResponse lists the registered importer platforms
type PlatformsResponse struct {
	Platforms []string `json:"platforms"`
}

// StatusGroup holds the orders sharing one lowercased status
type StatusGroup struct {
	Status string        `json:"status"`
	Count  int           `json:"count"`
	Orders []order.Order `json:"orders"`
}
