package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedEngine(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	cfg := DefaultTracingConfig()
	cfg.TracerProvider = tp

	r := gin.New()
	r.Use(RequestID(), TracingWithConfig(cfg), SpanEnricher())
	r.GET("/api/v1/catalog", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/api/v1/sessions/apply", func(c *gin.Context) {
		c.Status(http.StatusUnprocessableEntity)
	})
	return r, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig(t *testing.T) {
	t.Run("names spans by route and records the request id", func(t *testing.T) {
		r, recorder := newTracedEngine(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
		req.Header.Set(HeaderRequestID, "req-42")
		r.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Contains(t, spans[0].Name(), "/api/v1/catalog")
		v, ok := spanAttr(spans[0], "request_id")
		require.True(t, ok)
		assert.Equal(t, "req-42", v.AsString())
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("client errors mark the span", func(t *testing.T) {
		r, recorder := newTracedEngine(t)
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/sessions/apply", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "Client Error", spans[0].Status().Description)
	})

	t.Run("disabled passes through", func(t *testing.T) {
		r := gin.New()
		r.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
