package middleware

import (
	"net/http"

	"book-inventory/pkg/observability"
)

// Tracing opens one X-Ray segment per request when the tracer is enabled.
// Store calls made while handling the request become its subsegments.
func Tracing(tracer *observability.Tracer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !tracer.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), "request")
			if seg == nil {
				next.ServeHTTP(w, r)
				return
			}
			defer seg.Close(nil)

			tracer.AddAnnotation(ctx, "method", r.Method)
			tracer.AddAnnotation(ctx, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
