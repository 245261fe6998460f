package common

import (
	"errors"
	"net/http"
)

var errEmptyBody = errors.New("request body is required")

// Standard response headers
const (
	HeaderContentType = "Content-Type"
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
	ContentTypeJSON   = "application/json"
)

// Response is the uniform envelope returned for every request. Body is nil
// when the operation has nothing to say beyond the status code.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       *string           `json:"body,omitempty"`
}

// BodyString returns the serialized body or "" when there is none.
func (r Response) BodyString() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// MessageBody is the {"Message": ...} shape used for errors and simple notices.
func MessageBody(message string) map[string]string {
	return map[string]string{"Message": message}
}

// BuildResponse creates the envelope. A nil body produces no body field;
// anything else is normalized and serialized as JSON.
func BuildResponse(statusCode int, body interface{}) Response {
	response := Response{
		StatusCode: statusCode,
		Headers: map[string]string{
			HeaderContentType: ContentTypeJSON,
			HeaderAllowOrigin: "*",
		},
	}
	if body == nil {
		return response
	}

	encoded, err := JSON.MarshalToString(Normalize(body))
	if err != nil {
		fallback := `{"Message":"Internal Server Error"}`
		response.StatusCode = http.StatusInternalServerError
		response.Body = &fallback
		return response
	}
	response.Body = &encoded
	return response
}
