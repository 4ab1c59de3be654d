package server_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"destination-sync/core/fault"
	"destination-sync/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Validation", fault.Validation(fault.CodeMissingField, "Missing last name value"), 400, fault.CodeMissingField},
		{"Fatal", fault.Fatal("MULTIPLE_EXISTING_RECORDS", "Multiple records returned for given traits", 400), 422, "MULTIPLE_EXISTING_RECORDS"},
		{"Retryable", fault.Retryable("slow down", 429), 503, fault.CodeRetryable},
		{"Plain", errors.New("boom"), 500, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := server.ProblemFor(tt.err)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.code, p.Code)
			assert.Equal(t, tt.err.Error(), p.Detail)
		})
	}
}

func TestWriteProblem(t *testing.T) {
	app := fiber.New()
	app.Get("/retry", func(c *fiber.Ctx) error {
		return server.WriteProblem(c, fault.Retryable("429 error returned when searching for constituent", 429))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/retry", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var p server.Problem
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "retryable", p.Kind)
	assert.Equal(t, 429, p.RemoteStatus)
}
