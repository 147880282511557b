package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serveLogged runs one request through GinMiddleware, with requestID set
// upstream when non-empty, and returns the recorded entries.
func serveLogged(t *testing.T, requestID, method, route, target string, h gin.HandlerFunc) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)

	router := gin.New()
	if requestID != "" {
		router.Use(func(c *gin.Context) {
			c.Set("request_id", requestID)
			c.Next()
		})
	}
	router.Use(GinMiddleware(zap.New(core)))
	router.Handle(method, route, h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w, recorded
}

func requestEntry(t *testing.T, logs *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"dashboard page", http.StatusOK, zapcore.InfoLevel},
		{"import redirect", http.StatusSeeOther, zapcore.InfoLevel},
		{"unknown platform", http.StatusNotFound, zapcore.WarnLevel},
		{"upload too large", http.StatusRequestEntityTooLarge, zapcore.WarnLevel},
		{"render failure", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, logs := serveLogged(t, "", http.MethodGet, "/", "/", func(c *gin.Context) {
				c.Status(tt.status)
			})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.level, requestEntry(t, logs).Level)
		})
	}
}

func TestGinMiddleware_Fields(t *testing.T) {
	_, logs := serveLogged(t, "req-42", http.MethodPost, "/import/:platform", "/import/etsy?redirect=1",
		func(c *gin.Context) {
			c.Redirect(http.StatusSeeOther, "/")
		})

	fields := requestEntry(t, logs).ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/import/etsy", fields["path"])
	assert.Equal(t, "/import/:platform", fields["route"])
	assert.Equal(t, "etsy", fields["platform"])
	assert.Equal(t, "redirect=1", fields["query"])
	assert.Equal(t, int64(http.StatusSeeOther), fields["status"])
	for _, key := range []string{"latency", "client_ip", "body_size"} {
		assert.Contains(t, fields, key)
	}
}

func TestGinMiddleware_OmitsEmptyOptionalFields(t *testing.T) {
	_, logs := serveLogged(t, "", http.MethodGet, "/", "/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	fields := requestEntry(t, logs).ContextMap()
	assert.NotContains(t, fields, "query")
	assert.NotContains(t, fields, "platform")
	assert.NotContains(t, fields, "errors")
}

func TestGinMiddleware_RecordsGinErrors(t *testing.T) {
	_, logs := serveLogged(t, "", http.MethodPost, "/import/:platform", "/import/amazon", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusNotFound)
	})

	fields := requestEntry(t, logs).ContextMap()
	assert.Equal(t, []any{assert.AnError.Error()}, fields["errors"])
}

func TestGinMiddleware_RequestScopedLogger(t *testing.T) {
	var fromGin *zap.Logger
	_, logs := serveLogged(t, "ctx-req", http.MethodGet, "/", "/", func(c *gin.Context) {
		fromGin = GetGinLogger(c)
		FromContext(c.Request.Context()).Info("rendering dashboard")
		c.Status(http.StatusOK)
	})

	require.NotNil(t, fromGin)
	entries := logs.FilterMessage("rendering dashboard").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ctx-req", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/", entries[0].ContextMap()["path"])
}

func TestGetGinLogger_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	l := GetGinLogger(c)
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "boom-1")
		c.Next()
	})
	router.Use(Recovery(zap.New(core)))
	router.GET("/", func(c *gin.Context) {
		panic("template exploded")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "boom-1", fields["request_id"])
	assert.Equal(t, "template exploded", fields["error"])
}
