package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger logs one line per request. operationOf names the routed operation
// for a method and path and returns "" for unrouted pairs; it may be nil.
// The requestID field matches the one the dispatcher logs, on both the
// local server and the Lambda path.
func Logger(logger *zap.Logger, operationOf func(method, path string) string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			operation := ""
			if operationOf != nil {
				operation = operationOf(r.Method, r.URL.Path)
			}
			if operation == "" {
				operation = "unrouted"
			}

			logger.Info("Inventory request served",
				zap.String("operation", operation),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", middleware.GetReqID(r.Context())),
			)
		})
	}
}
