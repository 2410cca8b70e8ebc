package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{ApiKey: key, Skip: []string{"/health"}}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api", func(c *fiber.Ctx) error { return c.SendString("data") })
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		path   string
		header string
		value  string
		want   int
	}{
		{"Disabled", "", "/api", "", "", 200},
		{"Missing key", "secret", "/api", "", "", 401},
		{"Wrong key", "secret", "/api", "X-API-Key", "nope", 401},
		{"Header key", "secret", "/api", "X-API-Key", "secret", 200},
		{"Bearer key", "secret", "/api", "Authorization", "Bearer secret", 200},
		{"Skipped path", "secret", "/health", "", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			resp, err := newApp(tt.key).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
