package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"book-inventory/interfaces/http/rest/handlers"
	"book-inventory/pkg/common"
	"book-inventory/pkg/observability"

	"go.uber.org/zap"
)

// Paths served by the dispatcher
const (
	HealthPath = "/health"
	BookPath   = "/book"
	BooksPath  = "/books"
)

const operationNotFound = "NotFound"

// HandlerFunc handles one routed operation
type HandlerFunc func(ctx context.Context, req common.Request) common.Response

type routeKey struct {
	method string
	path   string
}

type route struct {
	operation string
	handle    HandlerFunc
}

// Dispatcher selects an operation from the request method and path and
// always produces a response.
type Dispatcher struct {
	routes  map[routeKey]route
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDispatcher builds the route table. metrics may be nil.
func NewDispatcher(books *handlers.BookHandler, metrics *observability.Metrics, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		routes:  make(map[routeKey]route),
		metrics: metrics,
		logger:  logger,
	}

	d.handle(http.MethodGet, HealthPath, "Health", books.Health)
	d.handle(http.MethodGet, BookPath, "GetBook", books.GetBook)
	d.handle(http.MethodGet, BooksPath, "ListBooks", books.ListBooks)
	d.handle(http.MethodPost, BookPath, "SaveBook", books.SaveBook)
	d.handle(http.MethodPatch, BookPath, "ModifyBook", books.ModifyBook)
	d.handle(http.MethodDelete, BookPath, "DeleteBook", books.DeleteBook)

	return d
}

func (d *Dispatcher) handle(method, path, operation string, fn HandlerFunc) {
	d.routes[routeKey{method: method, path: path}] = route{operation: operation, handle: fn}
}

// Operation returns the operation name for a method and path, or "" when
// nothing is routed there. Matching is exact on both.
func (d *Dispatcher) Operation(method, path string) string {
	return d.routes[routeKey{method: method, path: path}].operation
}

// Dispatch routes the request. It never panics; a panicking handler yields a
// 500 response.
func (d *Dispatcher) Dispatch(ctx context.Context, req common.Request) (resp common.Response) {
	start := time.Now()
	r, ok := d.routes[routeKey{method: req.Method, path: req.Path}]
	operation := r.operation
	if !ok {
		operation = operationNotFound
	}

	d.logger.Info("Request received",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("operation", operation),
		zap.String("requestID", req.RequestID),
	)

	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("Handler panicked",
				zap.String("operation", operation),
				zap.String("requestID", req.RequestID),
				zap.Error(fmt.Errorf("panic: %v", rec)),
			)
			resp = common.BuildResponse(http.StatusInternalServerError, common.MessageBody("Internal Server Error"))
		}
		d.metrics.ObserveRequest(operation, resp.StatusCode, time.Since(start))
	}()

	if !ok {
		return common.BuildResponse(http.StatusNotFound, common.MessageBody("Not Found"))
	}
	return r.handle(ctx, req)
}
