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

// stubRegistrar mounts a single GET /ping route under its prefix.
type stubRegistrar struct {
	prefix string
	body   string
}

func (s stubRegistrar) Prefix() string {
	return s.prefix
}

func (s stubRegistrar) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, s.body)
	})
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.version)
	assert.Empty(t, r.mounts)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Mount(stubRegistrar{prefix: "/reports", body: "pong"}).Setup()

	req := httptest.NewRequest("GET", "/api/v2/reports/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterMountsMultipleRegistrars(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).
		Mount(stubRegistrar{prefix: "/profitability", body: "profitability"}).
		Mount(stubRegistrar{prefix: "/system", body: "system"}).
		Setup()

	for _, prefix := range []string{"profitability", "system"} {
		req := httptest.NewRequest("GET", "/api/v1/"+prefix+"/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, prefix, w.Body.String())
	}
}

func TestRouterMountChainScopedToRegistrar(t *testing.T) {
	engine := gin.New()
	marker := func(c *gin.Context) {
		c.Header("X-Chain", "applied")
		c.Next()
	}
	NewRouter(engine).
		Mount(stubRegistrar{prefix: "/guarded", body: "a"}, marker).
		Mount(stubRegistrar{prefix: "/open", body: "b"}).
		Setup()

	req := httptest.NewRequest("GET", "/api/v1/guarded/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "applied", w.Header().Get("X-Chain"))

	req = httptest.NewRequest("GET", "/api/v1/open/ping", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("X-Chain"), "chain must not leak to other mounts")
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Mount(stubRegistrar{prefix: "/reports", body: "pong"}).Setup()

	req := httptest.NewRequest("GET", "/api/v1/reports/missing", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
