package tracing

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedRouter(t *testing.T, status int) (*mux.Router, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := mux.NewRouter()
	r.Use(Middleware(tp))
	r.HandleFunc("/api/v1/groups/{group_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}).Methods(http.MethodGet)

	return r, sr
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddlewareNamesSpanByRouteTemplate(t *testing.T) {
	r, sr := newRecordedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/6c3a0f8e-4a51-4a36-9a3e-8f0c3a5b2d11", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/groups/{group_id}", spans[0].Name())

	status, ok := attr(spans[0].Attributes(), "http.status_code")
	require.True(t, ok)
	assert.EqualValues(t, http.StatusOK, status.AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestMiddlewareMarksServerErrors(t *testing.T) {
	r, sr := newRecordedRouter(t, http.StatusInternalServerError)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/6c3a0f8e-4a51-4a36-9a3e-8f0c3a5b2d11", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestInitWritesSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Init("student-groups-test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "probe")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "probe")
}
