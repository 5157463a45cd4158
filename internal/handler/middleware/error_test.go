//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"parking-booking/internal/handler/httperr"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/public", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict}
		resp.Error.Message = "Slot is not available for the requested interval"
		_ = c.Error(gin.Error{Err: errs.New("taken"), Type: gin.ErrorTypePublic, Meta: resp})
	})
	r.GET("/private", func(c *gin.Context) {
		_ = c.Error(errs.New("unexpected"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	t.Run("public error is rendered from its meta", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/public", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not available")
	})

	t.Run("private error becomes 500", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
