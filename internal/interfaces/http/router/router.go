// Package router mounts HTTP handlers under the versioned API prefix.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that own a path prefix and
// mount their own routes under it. Handlers are the single source of
// their route tables; the router only decides where they hang.
type RouteRegistrar interface {
	Prefix() string
	RegisterRoutes(g *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version>.
type Router struct {
	engine  *gin.Engine
	version string
	mounts  []mount
}

type mount struct {
	registrar RouteRegistrar
	chain     []gin.HandlerFunc
}

// Option configures a Router.
type Option func(*Router)

// WithAPIVersion overrides the default "v1" version segment.
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter creates a Router for the given engine.
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount queues a registrar. The optional middleware chain applies to
// every route the registrar adds and to nothing else.
func (r *Router) Mount(registrar RouteRegistrar, chain ...gin.HandlerFunc) *Router {
	r.mounts = append(r.mounts, mount{registrar: registrar, chain: chain})
	return r
}

// Setup wires all mounted registrars into the engine.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)
	for _, m := range r.mounts {
		g := api.Group(m.registrar.Prefix())
		if len(m.chain) > 0 {
			g.Use(m.chain...)
		}
		m.registrar.RegisterRoutes(g)
	}
}
