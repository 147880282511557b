package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tectle/backend/internal/application/orders"
	"github.com/tectle/backend/internal/infrastructure/dashboard"
)

const testUploadLimit = 512

func newDashboardRouter(t *testing.T) (*gin.Engine, *orders.OrderBook, *recordingHoldings) {
	t.Helper()

	book, svc := newSampleBook(t)
	renderer, err := dashboard.NewRenderer()
	require.NoError(t, err)

	holdings := &recordingHoldings{}
	h := NewDashboardHandler(renderer, book, NewOrderImporter(svc, book, holdings), testUploadLimit)

	r := gin.New()
	r.GET("/", h.Index)
	r.POST("/import/:platform", h.Import)
	return r, book, holdings
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(r http.Handler, platform string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/import/"+platform, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardHandler_Index(t *testing.T) {
	r, _, _ := newDashboardRouter(t)

	tests := []struct {
		name        string
		query       string
		contains    []string
		notContains []string
	}{
		{
			name:     "unfiltered",
			query:    "",
			contains: []string{"Showing 4 orders (Status: All, Platform: All)", "ETSY-1001", "Sticker Pack"},
		},
		{
			name:        "status filter",
			query:       "?status=closed",
			contains:    []string{"Showing 1 orders (Status: Closed, Platform: All)", "ETSY-1002"},
			notContains: []string{"<strong>ETSY-1001</strong>"},
		},
		{
			name:        "platform filter",
			query:       "?platform=shopify",
			contains:    []string{"Showing 2 orders (Status: All, Platform: Shopify)"},
			notContains: []string{"<strong>ETSY-1002</strong>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestDashboardHandler_ImportRedirects(t *testing.T) {
	r, book, holdings := newDashboardRouter(t)

	body, contentType := multipartBody(t, UploadField, "etsy.json", []byte(newEtsyUpload))
	w := postUpload(r, "etsy", body, contentType)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, 5, book.Len())
	assert.Equal(t, []int{5}, holdings.Counts())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), "Showing 5 orders")
}

func TestDashboardHandler_ImportErrors(t *testing.T) {
	tests := []struct {
		name         string
		platform     string
		build        func(t *testing.T) (*bytes.Buffer, string)
		expectedCode int
		expectedBody string
	}{
		{
			name:     "unknown platform",
			platform: "amazon",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, UploadField, "a.json", []byte(newEtsyUpload))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: "amazon",
		},
		{
			name:     "not multipart",
			platform: "etsy",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(newEtsyUpload), "application/json"
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Expected multipart form data",
		},
		{
			name:     "missing field",
			platform: "etsy",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, "file", "etsy.json", []byte(newEtsyUpload))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "Missing payload file",
		},
		{
			name:     "empty file",
			platform: "etsy",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, UploadField, "etsy.json", nil)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "uploaded file is empty",
		},
		{
			name:     "not json",
			platform: "shopify",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, UploadField, "orders.csv", []byte("id,total\n1,2"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "unable to decode payload as JSON",
		},
		{
			name:     "oversized file",
			platform: "etsy",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, UploadField, "big.json", []byte("["+strings.Repeat(" ", testUploadLimit)+"]"))
			},
			expectedCode: http.StatusRequestEntityTooLarge,
			expectedBody: "Upload exceeds maximum allowed size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, book, holdings := newDashboardRouter(t)
			body, contentType := tt.build(t)

			w := postUpload(r, tt.platform, body, contentType)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.Equal(t, 4, book.Len())
			assert.Empty(t, holdings.Counts())
		})
	}
}
