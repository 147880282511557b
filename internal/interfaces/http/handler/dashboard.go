package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/infrastructure/dashboard"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/interfaces/http/dto"
)

// UploadField is the multipart field carrying the uploaded payload file
const UploadField = "payload"

// DashboardHandler serves the HTML dashboard and its upload form.
// Errors are answered as plain text.
type DashboardHandler struct {
	renderer      *dashboard.Renderer
	book          *orders.OrderBook
	importer      *OrderImporter
	maxUploadSize int64
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(renderer *dashboard.Renderer, book *orders.OrderBook, importer *OrderImporter, maxUploadSize int64) *DashboardHandler {
	return &DashboardHandler{
		renderer:      renderer,
		book:          book,
		importer:      importer,
		maxUploadSize: maxUploadSize,
	}
}

// Index renders the dashboard.
//
//	GET /?status=&platform=
func (h *DashboardHandler) Index(c *gin.Context) {
	var req dto.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid filters")
		return
	}

	all := h.book.Orders()
	in := dashboard.Input{
		Orders:   all,
		Filtered: orders.FilterOrders(all, req.Status, req.Platform),
		Status:   req.Status,
		Platform: req.Platform,
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, in); err != nil {
		logger.GetGinLogger(c).Error("Failed to render dashboard", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to render dashboard")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Import imports the uploaded payload file and redirects back to the dashboard.
//
//	POST /import/:platform (multipart/form-data, field "payload")
func (h *DashboardHandler) Import(c *gin.Context) {
	platform := c.Param("platform")
	if err := h.importer.CheckPlatform(platform); err != nil {
		c.String(errorStatus(err), err.Error())
		return
	}

	data, status, msg := h.readUpload(c)
	if status != 0 {
		c.String(status, msg)
		return
	}

	if _, err := h.importer.Import(c.Request.Context(), platform, data); err != nil {
		c.String(errorStatus(err), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// readUpload returns the uploaded file contents, or a non-zero status and message.
func (h *DashboardHandler) readUpload(c *gin.Context) ([]byte, int, string) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return nil, http.StatusRequestEntityTooLarge, "Upload exceeds maximum allowed size"
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return nil, http.StatusBadRequest, "Expected multipart form data"
		default:
			return nil, http.StatusBadRequest, "Missing payload file"
		}
	}
	if h.maxUploadSize > 0 && fh.Size > h.maxUploadSize {
		return nil, http.StatusRequestEntityTooLarge, "Upload exceeds maximum allowed size"
	}

	f, err := fh.Open()
	if err != nil {
		return nil, http.StatusBadRequest, "Unable to read payload file"
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, http.StatusBadRequest, "Unable to read payload file"
	}
	return data, 0, ""
}
