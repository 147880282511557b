package dto

import "net/http"

// API error codes. Every code has the form ERR_<DESCRIPTION>. NOT_FOUND
// marks a platform without importer, ALREADY_EXISTS an importer registered
// twice and INVALID_INPUT a payload that holds no orders.
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists   = "ERR_ALREADY_EXISTS"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

type errorCode struct {
	status int
	domain string
}

var errorCodes = map[string]errorCode{
	ErrCodeInternal:        {http.StatusInternalServerError, "INTERNAL_ERROR"},
	ErrCodeValidation:      {http.StatusBadRequest, "VALIDATION_ERROR"},
	ErrCodeNotFound:        {http.StatusNotFound, "NOT_FOUND"},
	ErrCodeAlreadyExists:   {http.StatusConflict, "ALREADY_EXISTS"},
	ErrCodeBadRequest:      {http.StatusBadRequest, "BAD_REQUEST"},
	ErrCodeInvalidInput:    {http.StatusBadRequest, "INVALID_INPUT"},
	ErrCodeRequestTooLarge: {http.StatusRequestEntityTooLarge, ""},
}

// domainCodes maps shared.DomainError codes onto API codes.
var domainCodes = func() map[string]string {
	m := make(map[string]string, len(errorCodes))
	for api, ec := range errorCodes {
		if ec.domain != "" {
			m[ec.domain] = api
		}
	}
	return m
}()

// NormalizeErrorCode converts a domain error code such as NOT_FOUND to its API
// code. API codes and unknown codes come back unchanged.
func NormalizeErrorCode(code string) string {
	if api, ok := domainCodes[code]; ok {
		return api
	}
	return code
}

// GetHTTPStatus returns the HTTP status for an API or domain error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if ec, ok := errorCodes[NormalizeErrorCode(code)]; ok {
		return ec.status
	}
	return http.StatusInternalServerError
}
