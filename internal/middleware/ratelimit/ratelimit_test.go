package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestMiddlewareLimitsPerClient(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 2, WindowDuration: time.Hour})
	defer rl.Stop()

	app := fiber.New()
	app.Use(rl.Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	want := []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}
	for i, code := range want {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if resp.StatusCode != code {
			t.Errorf("request %d: status = %d, want %d", i, resp.StatusCode, code)
		}
	}
}

func TestAllowRefills(t *testing.T) {
	rl := New(Config{MaxRequestsPerMinute: 1, WindowDuration: time.Hour})
	defer rl.Stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request should be limited")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("other clients keep their own bucket")
	}

	rl.buckets["10.0.0.1"].lastRefill = time.Now().Add(-2 * time.Hour)
	if !rl.allow("10.0.0.1") {
		t.Error("bucket should refill after the window")
	}
}
