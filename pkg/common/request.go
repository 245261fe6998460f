package common

import "context"

// Request is the transport-independent description of one inbound call, as
// delivered by the invocation runtime or the local HTTP adapter.
type Request struct {
	Method          string
	Path            string
	QueryParameters map[string]string
	Body            string
	RequestID       string
	// BodyErr is set when the transport could not recover the body. It is
	// only reported by handlers that read the body.
	BodyErr error
}

// Query returns a query string parameter and whether it was present.
func (r Request) Query(key string) (string, bool) {
	if r.QueryParameters == nil {
		return "", false
	}
	value, ok := r.QueryParameters[key]
	return value, ok
}

// DecodeBody unmarshals the JSON body into v, failing with BodyErr first.
func (r Request) DecodeBody(v interface{}) error {
	if r.BodyErr != nil {
		return r.BodyErr
	}
	return DecodeBody(r.Body, v)
}

type bodyErrorKey struct{}

// WithBodyError records a body transport failure on the context.
func WithBodyError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, bodyErrorKey{}, err)
}

// BodyErrorFrom returns the failure recorded by WithBodyError, if any.
func BodyErrorFrom(ctx context.Context) error {
	err, _ := ctx.Value(bodyErrorKey{}).(error)
	return err
}
