package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func secureHeaders(h gin.HandlerFunc) http.Header {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(h)
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w.Header()
}

func TestSecure(t *testing.T) {
	h := secureHeaders(Secure())

	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))

	csp := h.Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "script-src 'none'")
	assert.Contains(t, csp, "form-action 'self'")
	assert.Contains(t, csp, "style-src 'self' 'unsafe-inline'")
}

func TestSecureWithConfig_OmitsEmptyHeaders(t *testing.T) {
	h := secureHeaders(SecureWithConfig(SecurityConfig{FrameOptions: "SAMEORIGIN"}))

	assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Empty(t, h.Get("Content-Security-Policy"))
	assert.Empty(t, h.Get("Referrer-Policy"))
}
