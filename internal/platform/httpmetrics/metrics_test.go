package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	collector := NewCollector("delivery")
	router := gin.New()
	router.Use(collector.Middleware())
	router.GET("/v1/orders/:orderId", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", collector.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders/42", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `delivery_http_requests_total{method="GET",route="/v1/orders/:orderId",status="204"} 1`), body)
}
