package rest

import (
	"io"
	"net/http"

	"book-inventory/interfaces/http/rest/middleware"
	"book-inventory/pkg/common"
	"book-inventory/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies read by the local server
const maxBodyBytes = 1 << 20

// Router exposes the dispatcher over HTTP. The local server serves it directly
// and the Lambda entry point proxies API Gateway events into it.
type Router struct {
	dispatcher *Dispatcher
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil, in which case
// /metrics is not served. A nil tracer disables request segments.
func NewRouter(
	dispatcher *Dispatcher,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		dispatcher: dispatcher,
		metrics:    metrics,
		tracer:     tracer,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures middleware and hands every path to the dispatcher
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger, rt.dispatcher.Operation))
	router.Use(middleware.Tracing(rt.tracer))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.HandleFunc("/*", rt.dispatch)
	return router
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeResponse(w, common.BuildResponse(http.StatusBadRequest, common.MessageBody("Invalid request body")))
		return
	}

	query := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	resp := rt.dispatcher.Dispatch(r.Context(), common.Request{
		Method:          r.Method,
		Path:            r.URL.Path,
		QueryParameters: query,
		Body:            string(body),
		RequestID:       chimiddleware.GetReqID(r.Context()),
		BodyErr:         common.BodyErrorFrom(r.Context()),
	})
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp common.Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != nil {
		_, _ = io.WriteString(w, *resp.Body)
	}
}
