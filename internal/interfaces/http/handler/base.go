package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tectle/backend/internal/domain/shared"
	"github.com/tectle/backend/internal/interfaces/http/dto"
	"github.com/tectle/backend/internal/interfaces/http/middleware"
)

// BaseHandler carries the JSON envelope helpers shared by the API handlers.
type BaseHandler struct{}

// getRequestID returns the id set by middleware.RequestID, or the raw header
// when the middleware did not run.
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta answers 200 with the data page and its pagination meta.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error writes an error envelope tagged with the request id.
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BindQuery binds query parameters into req. On failure it has already
// answered 400 with validation details and returns false.
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	return bindOrReject(c, c.ShouldBindQuery(req))
}

// BindURI is BindQuery for path parameters.
func (h *BaseHandler) BindURI(c *gin.Context, req any) bool {
	return bindOrReject(c, c.ShouldBindUri(req))
}

func bindOrReject(c *gin.Context, err error) bool {
	if err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// HandleError answers err as an error envelope. Domain errors keep their
// message; oversized bodies get 413 and everything else a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, code, message := classifyError(err)
	h.Error(c, status, code, message)
}

func classifyError(err error) (status int, code, message string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = dto.NormalizeErrorCode(domainErr.Code)
		return dto.GetHTTPStatus(code), code, domainErr.Message
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
			"Request body exceeds maximum allowed size"
	}
	return http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"
}

// errorStatus is the status HandleError would answer err with.
func errorStatus(err error) int {
	status, _, _ := classifyError(err)
	return status
}
