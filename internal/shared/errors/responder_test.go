package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders/:id", func(c *gin.Context) {
		c.Set("X-Request-ID", "req-42")
		responder.RespondError(c, err)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/7", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestResponderMapsKindsWithRequestID(t *testing.T) {
	responder := NewResponder(WithMappers(MapKind), WithRequestIDKey("X-Request-ID"))

	rec, body := serveError(t, responder, New(KindNotFound, "order not found"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "not-found", body["kind"])
	require.Equal(t, "order not found", body["detail"])
	require.Equal(t, "/orders/7", body["instance"])
	require.Equal(t, "req-42", body["requestId"])
}

func TestResponderPassesProblemsThrough(t *testing.T) {
	responder := NewResponder(WithBaseURI("https://delivery.example"))

	rec, body := serveError(t, responder, fmt.Errorf("bind: %w", ErrBadRequest.WithDetail("bad json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "https://delivery.example"+TypeBadRequest, body["type"])
	require.NotContains(t, body, "requestId")
}

func TestResponderHidesUnmappedErrors(t *testing.T) {
	var logs bytes.Buffer
	responder := NewResponder(WithMappers(MapKind), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	rec, body := serveError(t, responder, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "unexpected error", body["detail"])
	require.Contains(t, logs.String(), "connection refused")
}
