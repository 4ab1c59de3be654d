// Package transport is the HTTP collaborator used by every destination client.
//
// It performs one JSON request and returns the status and raw body. It applies
// no retries and no status interpretation: callers classify statuses with the
// fault package.
//
// # Client Interface
//
// The Transport interface abstracts the underlying HTTP client, making it easy
// to mock destination APIs in unit tests (see core/transport/mocks).
//
// # Usage
//
//	t := transport.NewClient(cfg.Transport)
//	resp, err := t.Send(ctx, transport.Request{
//	    Method: "GET",
//	    URL:    "https://api.example.com/v1/things",
//	    Headers: map[string]string{"Authorization": "Bearer ..."},
//	})
package transport
