package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Client is a Transport backed by fiber's fasthttp agent.
type Client struct {
	timeout   time.Duration
	userAgent string
}

// NewClient creates a new HTTP transport based on the configuration.
func NewClient(cfg Config) *Client {
	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		timeout:   time.Duration(timeout) * time.Second,
		userAgent: cfg.UserAgent,
	}
}

// Send performs the request. The context deadline, when earlier than the
// configured timeout, bounds the call.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	a := fiber.AcquireAgent()
	r := a.Request()
	r.Header.SetMethod(req.Method)
	r.SetRequestURI(req.URL)

	if c.userAgent != "" {
		a.UserAgent(c.userAgent)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	for k, v := range req.Headers {
		a.Set(k, v)
	}

	if req.Body != nil {
		body, err := json.Marshal(req.Body)
		if err != nil {
			fiber.ReleaseAgent(a)
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		a.ContentType(fiber.MIMEApplicationJSON)
		a.Body(body)
	}
	a.Timeout(timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("failed to prepare %s %s: %w", req.Method, req.URL, err)
	}

	// Bytes releases the agent.
	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s %s failed: %w", req.Method, req.URL, errs[0])
	}

	return &Response{Status: status, Body: body}, nil
}
