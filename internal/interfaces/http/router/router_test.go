package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func hit(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewAPI_Prefix(t *testing.T) {
	tests := []struct {
		name string
		opts []APIOption
		want string
	}{
		{"default", nil, "/api/v1"},
		{"explicit", []APIOption{WithVersion("v2")}, "/api/v2"},
		{"empty keeps default", []APIOption{WithVersion("")}, "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewAPI(gin.New(), tt.opts...).Prefix())
		})
	}
}

func TestAPI_Setup(t *testing.T) {
	engine := gin.New()

	orders := NewGroup("orders", "/orders").
		GET("", reply("list")).
		GET("/platforms", reply("etsy,shopify")).
		POST("/import/:platform", func(c *gin.Context) {
			c.String(http.StatusCreated, c.Param("platform"))
		})
	system := NewGroup("system", "/system").GET("/ping", reply("pong"))

	NewAPI(engine).Mount(orders, system).Setup()

	tests := []struct {
		method string
		path   string
		code   int
		body   string
	}{
		{http.MethodGet, "/api/v1/orders", http.StatusOK, "list"},
		{http.MethodGet, "/api/v1/orders/platforms", http.StatusOK, "etsy,shopify"},
		{http.MethodPost, "/api/v1/orders/import/etsy", http.StatusCreated, "etsy"},
		{http.MethodGet, "/api/v1/system/ping", http.StatusOK, "pong"},
		{http.MethodGet, "/api/v2/system/ping", http.StatusNotFound, ""},
		{http.MethodGet, "/orders", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := hit(engine, tt.method, tt.path)
			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestAPI_UseScopesMiddlewareToAPI(t *testing.T) {
	engine := gin.New()
	engine.GET("/", reply("dashboard"))

	NewAPI(engine).
		Use(func(c *gin.Context) {
			c.Header("X-API", "v1")
			c.Next()
		}).
		Mount(NewGroup("system", "/system").GET("/ping", reply("pong"))).
		Setup()

	assert.Equal(t, "v1", hit(engine, http.MethodGet, "/api/v1/system/ping").Header().Get("X-API"))
	assert.Empty(t, hit(engine, http.MethodGet, "/").Header().Get("X-API"))
}

func TestGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewGroup("orders", "/orders")
		assert.Equal(t, "orders", g.Name())
		assert.Equal(t, "/orders", g.Prefix())
	})

	t.Run("middleware covers children", func(t *testing.T) {
		engine := gin.New()
		g := NewGroup("orders", "/orders").Use(func(c *gin.Context) {
			c.Header("X-Group", "orders")
			c.Next()
		})
		g.Sub("reports", "/reports").GET("", reply("report"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := hit(engine, http.MethodGet, "/api/v1/orders/reports")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "report", w.Body.String())
		assert.Equal(t, "orders", w.Header().Get("X-Group"))
	})

	t.Run("handle any method", func(t *testing.T) {
		engine := gin.New()
		NewGroup("orders", "/orders").
			Handle(http.MethodHead, "", func(c *gin.Context) { c.Status(http.StatusNoContent) }).
			RegisterRoutes(engine.Group(""))

		assert.Equal(t, http.StatusNoContent, hit(engine, http.MethodHead, "/orders").Code)
	})
}
