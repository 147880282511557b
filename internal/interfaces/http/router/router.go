package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Registrar mounts routes on a gin router group.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// API mounts route groups under /api/<version>.
type API struct {
	engine     *gin.Engine
	version    string
	groups     []Registrar
	middleware []gin.HandlerFunc
}

// APIOption configures an API.
type APIOption func(*API)

// WithVersion sets the version segment of the API prefix. Default: v1
func WithVersion(version string) APIOption {
	return func(a *API) {
		if version != "" {
			a.version = version
		}
	}
}

func NewAPI(engine *gin.Engine, opts ...APIOption) *API {
	a := &API{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Prefix returns the mount point, e.g. /api/v1.
func (a *API) Prefix() string {
	return "/api/" + a.version
}

// Use adds middleware that runs only for API routes.
func (a *API) Use(middleware ...gin.HandlerFunc) *API {
	a.middleware = append(a.middleware, middleware...)
	return a
}

// Mount queues groups for Setup.
func (a *API) Mount(groups ...Registrar) *API {
	a.groups = append(a.groups, groups...)
	return a
}

// Setup registers every mounted group on the engine.
func (a *API) Setup() {
	api := a.engine.Group(a.Prefix(), a.middleware...)
	for _, g := range a.groups {
		g.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// Group is a named set of routes below one path prefix, such as the order
// endpoints under /orders.
type Group struct {
	name       string
	prefix     string
	routes     []route
	children   []*Group
	middleware []gin.HandlerFunc
}

func NewGroup(name, prefix string) *Group {
	return &Group{name: name, prefix: prefix}
}

func (g *Group) Name() string   { return g.name }
func (g *Group) Prefix() string { return g.prefix }

// Use adds middleware for this group and its children.
func (g *Group) Use(middleware ...gin.HandlerFunc) *Group {
	g.middleware = append(g.middleware, middleware...)
	return g
}

func (g *Group) GET(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodGet, path, handlers...)
}

func (g *Group) POST(path string, handlers ...gin.HandlerFunc) *Group {
	return g.Handle(http.MethodPost, path, handlers...)
}

// Handle records a route for any method.
func (g *Group) Handle(method, path string, handlers ...gin.HandlerFunc) *Group {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// Sub returns a child group nested below this group's prefix.
func (g *Group) Sub(name, prefix string) *Group {
	child := NewGroup(name, prefix)
	g.children = append(g.children, child)
	return child
}

// RegisterRoutes implements Registrar.
func (g *Group) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix, g.middleware...)
	for _, r := range g.routes {
		group.Handle(r.method, r.path, r.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(group)
	}
}
