package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidator()
}

type analyzeStub struct {
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" binding:"required,datetime=2006-01-02"`
	WagePerDay string `json:"wage_per_day" binding:"required,money"`
}

func performBind(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/analyze", func(c *gin.Context) {
		var req analyzeStub
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator_MoneyTag(t *testing.T) {
	t.Run("accepts non-negative decimal strings", func(t *testing.T) {
		w := performBind(t, `{"start_date":"2026-05-01","end_date":"2026-05-31","wage_per_day":"1500.75"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		w := performBind(t, `{"start_date":"2026-05-01","end_date":"2026-05-31","wage_per_day":"-1"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "wage_per_day")
		assert.Contains(t, w.Body.String(), "non-negative decimal")
	})

	t.Run("rejects non-numeric amounts", func(t *testing.T) {
		w := performBind(t, `{"start_date":"2026-05-01","end_date":"2026-05-31","wage_per_day":"lots"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleValidationError_UsesJSONFieldNames(t *testing.T) {
	w := performBind(t, `{"end_date":"2026-05-31","wage_per_day":"10"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"field":"start_date"`)
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, `"code":"ERR_VALIDATION"`)
}

func TestHandleValidationError_DateFormatMessage(t *testing.T) {
	w := performBind(t, `{"start_date":"05/01/2026","end_date":"2026-05-31","wage_per_day":"10"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "2006-01-02")
}
