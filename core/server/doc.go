// Package server holds the HTTP server configuration and the error response shape.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the request read timeout.
//
// # Errors
//
// Handlers report failures with WriteProblem, which renders an
// application/problem+json body. Reconciliation faults map to statuses by
// kind: validation to 400, fatal to 422 and retryable to 503 with a
// Retry-After header. Any other error is a 500.
package server
