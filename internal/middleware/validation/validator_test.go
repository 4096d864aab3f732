package validation

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(Middleware(Config{MaxLookupLength: 12}))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/api/v1/lookup", ok)
	app.Post("/api/v1/catalog/:slug/run", ok)
	return app
}

func TestMiddleware(t *testing.T) {
	long := strings.Repeat("K", 13)

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		want        int
	}{
		{"plain lookup", "GET", "/api/v1/lookup?vehicle=KA01", "", fiber.StatusOK},
		{"blank lookup", "GET", "/api/v1/lookup", "", fiber.StatusOK},
		{"long lookup", "GET", "/api/v1/lookup?vehicle=" + long, "", fiber.StatusBadRequest},
		{"control chars", "GET", "/api/v1/lookup?vehicle=" + url.QueryEscape("KA\x0001"), "", fiber.StatusBadRequest},
		{"default source", "POST", "/api/v1/catalog/busiest-hour/run", "", fiber.StatusOK},
		{"extract source", "POST", "/api/v1/catalog/busiest-hour/run?source=extract", "", fiber.StatusOK},
		{"unknown source", "POST", "/api/v1/catalog/busiest-hour/run?source=redis", "", fiber.StatusBadRequest},
		{"json body", "POST", "/api/v1/catalog/busiest-hour/run", "application/json", fiber.StatusOK},
		{"xml body", "POST", "/api/v1/catalog/busiest-hour/run", "application/xml", fiber.StatusUnsupportedMediaType},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
