package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tectle/backend/internal/application/orders"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	service   *orders.OrderService
	book      *orders.OrderBook
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, service *orders.OrderService, book *orders.OrderBook) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		service:   service,
		book:      book,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	GoVersion  string   `json:"go_version"`
	Uptime     string   `json:"uptime"`
	Platforms  []string `json:"platforms"`
	OrdersHeld int      `json:"orders_held"`
}

// GetSystemInfo returns version, uptime and order book information
//
//	GET /api/v1/system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:       h.name,
		Version:    h.version,
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Platforms:  h.service.Platforms(),
		OrdersHeld: h.book.Len(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a liveness check
//
//	GET /api/v1/system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Health reports liveness for load balancers. It bypasses the API envelope.
//
//	GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"time":        time.Now().Format(time.RFC3339),
		"orders_held": h.book.Len(),
	})
}
