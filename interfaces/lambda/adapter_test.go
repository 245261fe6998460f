package lambda

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"book-inventory/application/commands/bus"
	commandhandlers "book-inventory/application/commands/handlers"
	querybus "book-inventory/application/queries/bus"
	queryhandlers "book-inventory/application/queries/handlers"
	"book-inventory/application/services"
	"book-inventory/domain/book"
	"book-inventory/infrastructure/persistence/memory"
	"book-inventory/interfaces/http/rest"
	"book-inventory/interfaces/http/rest/handlers"
	"book-inventory/pkg/common"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, books *memory.BookRepository) *Handler {
	t.Helper()
	logger := zap.NewNop()

	reader := services.NewReviewService(memory.NewReviewRepository(), nil, nil, time.Second, logger)

	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))
	require.NoError(t, commandhandlers.RegisterAll(commandBus, books, logger))

	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger))
	require.NoError(t, queryhandlers.RegisterAll(queryBus, books, reader, logger))

	dispatcher := rest.NewDispatcher(handlers.NewBookHandler(commandBus, queryBus, logger), nil, logger)
	return NewHandler(rest.NewRouter(dispatcher, nil, nil, true, logger).Setup(), logger)
}

func badBody(method, path string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod:      method,
		Path:            path,
		Body:            "%%%",
		IsBase64Encoded: true,
	}
}

func TestHandle_MissingBook(t *testing.T) {
	// Arrange
	h := newTestHandler(t, memory.NewBookRepository())
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  rest.BookPath,
		QueryStringParameters: map[string]string{"bookid": "42"},
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}

	// Act
	resp, err := h.Handle(context.Background(), event)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"Message":"bookid: 42 not found"}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
}

func TestHandle_ExistingBook(t *testing.T) {
	books := memory.NewBookRepository()
	require.NoError(t, books.Put(context.Background(), book.Record{"bookid": "42", "title": "Dune"}))
	h := newTestHandler(t, books)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  rest.BookPath,
		QueryStringParameters: map[string]string{"bookid": "42"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"title":"Dune"`)
}

func TestHandle_MissingQueryParameters(t *testing.T) {
	h := newTestHandler(t, memory.NewBookRepository())

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: rest.BookPath})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandle_Base64Body(t *testing.T) {
	books := memory.NewBookRepository()
	h := newTestHandler(t, books)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            rest.BookPath,
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"bookid":"1","title":"Emma"}`)),
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stored, err := books.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Emma", stored["title"])
}

func TestHandle_UndecodableBodyOnlyFailsBodyOperations(t *testing.T) {
	h := newTestHandler(t, memory.NewBookRepository())

	tests := []struct {
		name   string
		event  events.APIGatewayProxyRequest
		status int
	}{
		{"unmatched path", badBody(http.MethodGet, "/nope"), http.StatusNotFound},
		{"unmatched method", badBody(http.MethodPut, rest.BookPath), http.StatusNotFound},
		{"health", badBody(http.MethodGet, rest.HealthPath), http.StatusOK},
		{"list", badBody(http.MethodGet, rest.BooksPath), http.StatusOK},
		{"save", badBody(http.MethodPost, rest.BookPath), http.StatusBadRequest},
		{"modify", badBody(http.MethodPatch, rest.BookPath), http.StatusBadRequest},
		{"delete", badBody(http.MethodDelete, rest.BookPath), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(context.Background(), tt.event)

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestWithRequestID(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		Headers:           map[string]string{"x-request-id": "spoofed", "Accept": "application/json"},
		MultiValueHeaders: map[string][]string{"Accept": {"application/json"}},
		RequestContext:    events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}

	got := withRequestID(context.Background(), event)

	assert.Equal(t, map[string]string{"X-Request-Id": "req-1", "Accept": "application/json"}, got.Headers)
	assert.Equal(t, []string{"req-1"}, got.MultiValueHeaders["X-Request-Id"])
	assert.Equal(t, "spoofed", event.Headers["x-request-id"])
}

func TestRequestID_InvocationID(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-1"})

	assert.Equal(t, "aws-1", RequestID(ctx, events.APIGatewayProxyRequest{}))
}

func TestRequestID_Generated(t *testing.T) {
	_, err := uuid.Parse(RequestID(context.Background(), events.APIGatewayProxyRequest{}))

	assert.NoError(t, err)
}

func TestToProxyResponse_NoBody(t *testing.T) {
	resp := ToProxyResponse(common.BuildResponse(http.StatusOK, nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
}
