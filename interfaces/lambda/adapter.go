// Package lambda serves API Gateway proxy events through the HTTP router.
package lambda

import (
	"context"
	"encoding/base64"
	"net/http"

	"book-inventory/pkg/common"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves API Gateway proxy integrations
type Handler struct {
	proxy  *chiadapter.ChiLambda
	logger *zap.Logger
}

// NewHandler creates a new Lambda handler over the configured router
func NewHandler(router *chi.Mux, logger *zap.Logger) *Handler {
	return &Handler{proxy: chiadapter.New(router), logger: logger}
}

// Handle is passed to lambda.Start. Failures are always reported through the
// response status, never through the returned error.
//
// A body that claims to be base64 but is not is dropped and the failure rides
// on the context, so routing still decides the status and only operations
// that read the body reject it.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.IsBase64Encoded && event.Body != "" {
		if _, err := base64.StdEncoding.DecodeString(event.Body); err != nil {
			h.logger.Info("Undecodable request body",
				zap.String("path", event.Path),
				zap.Error(err),
			)
			ctx = common.WithBodyError(ctx, err)
			event.Body = ""
			event.IsBase64Encoded = false
		}
	}

	event = withRequestID(ctx, event)

	resp, err := h.proxy.ProxyWithContext(ctx, event)
	if err != nil {
		h.logger.Error("Failed to proxy request",
			zap.String("method", event.HTTPMethod),
			zap.String("path", event.Path),
			zap.Error(err),
		)
		return ToProxyResponse(common.BuildResponse(http.StatusInternalServerError, common.MessageBody("Internal Server Error"))), nil
	}
	return resp, nil
}

// withRequestID sets the request id header the router's RequestID middleware
// reads. It prefers the gateway id, then the invocation id, then a new uuid.
func withRequestID(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyRequest {
	id := RequestID(ctx, event)

	headers := make(map[string]string, len(event.Headers)+1)
	for key, value := range event.Headers {
		if http.CanonicalHeaderKey(key) != chimiddleware.RequestIDHeader {
			headers[key] = value
		}
	}
	headers[chimiddleware.RequestIDHeader] = id
	event.Headers = headers

	if event.MultiValueHeaders != nil {
		multi := make(map[string][]string, len(event.MultiValueHeaders)+1)
		for key, values := range event.MultiValueHeaders {
			if http.CanonicalHeaderKey(key) != chimiddleware.RequestIDHeader {
				multi[key] = values
			}
		}
		multi[chimiddleware.RequestIDHeader] = []string{id}
		event.MultiValueHeaders = multi
	}
	return event
}

// RequestID picks the id a request is logged under
func RequestID(ctx context.Context, event events.APIGatewayProxyRequest) string {
	if event.RequestContext.RequestID != "" {
		return event.RequestContext.RequestID
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

// ToProxyResponse converts a dispatcher response
func ToProxyResponse(resp common.Response) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(resp.Headers))
	for key, value := range resp.Headers {
		headers[key] = value
	}
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       resp.BodyString(),
	}
}
