package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitEngine(maxBytes int64) *gin.Engine {
	engine := gin.New()
	engine.Use(BodyLimit(maxBytes))
	engine.POST("/reports", func(c *gin.Context) {
		c.String(http.StatusOK, "accepted")
	})
	return engine
}

func TestBodyLimit(t *testing.T) {
	t.Run("body under the limit passes through", func(t *testing.T) {
		engine := bodyLimitEngine(64)

		req := httptest.NewRequest("POST", "/reports", strings.NewReader(`{"period":"2026-05"}`))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "accepted", w.Body.String())
	})

	t.Run("oversized body is rejected with the error envelope", func(t *testing.T) {
		engine := bodyLimitEngine(8)

		req := httptest.NewRequest("POST", "/reports", strings.NewReader(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), `"REQUEST_TOO_LARGE"`)
	})
}
