package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func operations(method, path string) string {
	if method == http.MethodGet && path == "/book" {
		return "GetBook"
	}
	return ""
}

func TestLogger_RecordsOperationAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := chimiddleware.RequestID(Logger(zap.New(core), operations)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	))

	req := httptest.NewRequest(http.MethodGet, "/book?bookid=1", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GetBook", fields["operation"])
	assert.Equal(t, "req-42", fields["requestID"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestLogger_UnroutedRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Logger(zap.New(core), operations)(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/book", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unrouted", logs.All()[0].ContextMap()["operation"])
}

func TestLogger_WithoutOperationLookup(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Logger(zap.New(core), nil)(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/book", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unrouted", logs.All()[0].ContextMap()["operation"])
}
