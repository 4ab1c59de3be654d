package auth_test

import (
	"net/http/httptest"
	"testing"

	"destination-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{
		ApiKey: key,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
	}))
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		path   string
		want   int
	}{
		{"ValidKey", "secret", "secret", "/hubspot", fiber.StatusOK},
		{"WrongKey", "secret", "nope", "/hubspot", fiber.StatusUnauthorized},
		{"MissingKey", "secret", "", "/hubspot", fiber.StatusUnauthorized},
		{"Disabled", "", "", "/hubspot", fiber.StatusOK},
		{"Skipped", "secret", "", "/metrics", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(auth.HeaderAPIKey, tt.header)
			}

			resp, err := newApp(tt.key).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
