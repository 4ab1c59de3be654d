package transport

import (
	"context"
	"encoding/json"
	"fmt"
)

// Request is a single outbound API call.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URL is the absolute request URL, including any query string.
	URL string
	// Headers are added to the request.
	Headers map[string]string
	// Body, when non-nil, is encoded as JSON.
	Body any
}

// Response is the result of a completed API call, whatever its status.
type Response struct {
	// Status is the HTTP status code.
	Status int
	// Body is the raw response body.
	Body []byte
}

// JSON decodes the response body into v. An empty body leaves v untouched.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Transport performs destination API calls.
// An error means the call did not complete; any received status is a Response.
type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}
