package mocks

import (
	"context"

	"destination-sync/core/transport"

	"github.com/stretchr/testify/mock"
)

// Transport is a mock implementation of transport.Transport
type Transport struct {
	mock.Mock
}

func (m *Transport) Send(ctx context.Context, req transport.Request) (*transport.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*transport.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

// Request matches a request by method and URL.
func Request(method, url string) interface{} {
	return mock.MatchedBy(func(req transport.Request) bool {
		return req.Method == method && req.URL == url
	})
}

// Reply builds a response with a JSON body.
func Reply(status int, body string) *transport.Response {
	return &transport.Response{Status: status, Body: []byte(body)}
}
