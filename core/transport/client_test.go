package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"destination-sync/core/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotType   string
		gotBody   map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"123"}`))
	}))
	defer srv.Close()

	c := transport.NewClient(transport.Config{TimeoutSeconds: 5, UserAgent: "test"})
	resp, err := c.Send(context.Background(), transport.Request{
		Method:  "POST",
		URL:     srv.URL + "/things",
		Headers: map[string]string{"Authorization": "Bearer token"},
		Body:    map[string]any{"name": "thing"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "thing", gotBody["name"])

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.JSON(&out))
	assert.Equal(t, "123", out.ID)
}

func TestClient_SendNonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := transport.NewClient(transport.Config{})
	resp, err := c.Send(context.Background(), transport.Request{Method: "GET", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
}

func TestClient_SendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := transport.NewClient(transport.Config{})
	_, err := c.Send(ctx, transport.Request{Method: "GET", URL: "http://127.0.0.1:1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_SendUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := transport.NewClient(transport.Config{TimeoutSeconds: 1})
	_, err := c.Send(ctx, transport.Request{Method: "GET", URL: "http://127.0.0.1:1/unreachable"})
	assert.Error(t, err)
}

func TestResponse_JSON(t *testing.T) {
	var v map[string]any
	assert.NoError(t, (&transport.Response{}).JSON(&v))
	assert.Nil(t, v)

	assert.Error(t, (&transport.Response{Body: []byte("{")}).JSON(&v))
}
