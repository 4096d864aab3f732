// Package api assembles the fiber application that serves the dashboard.
package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/securecheck/backend/internal/api/handlers"
	"github.com/securecheck/backend/internal/metrics"
	"github.com/securecheck/backend/internal/middleware/ratelimit"
	"github.com/securecheck/backend/internal/middleware/security"
	"github.com/securecheck/backend/internal/middleware/validation"
	"github.com/securecheck/backend/internal/query"
	"github.com/securecheck/backend/pkg/config"
	"github.com/securecheck/backend/pkg/logger"
)

// NewApp wires middleware and routes. The caller owns limiter and must
// stop it after the app shuts down.
func NewApp(cfg *config.Config, engine *query.Engine, limiter *ratelimit.RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
	})

	allowOrigins := "*"
	if len(cfg.Security.AllowedOrigins) > 0 {
		allowOrigins = strings.Join(cfg.Security.AllowedOrigins, ",")
	}

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		AllowedOrigins: cfg.Security.AllowedOrigins,
		IsDevelopment:  cfg.Security.Development,
	}))
	app.Use(validation.Middleware(validation.Config{
		MaxLookupLength: cfg.Validation.MaxLookupLength,
		Logger:          logger.Log,
	}))

	dashboardHandler := handlers.NewDashboardHandler(engine)
	wsHandler := handlers.NewWebSocketHandler(engine, cfg.Validation.MaxLookupLength)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	api.Get("/catalog", dashboardHandler.ListCatalog)
	api.Get("/lookup", dashboardHandler.Lookup)

	limit := limiter.Middleware()
	api.Get("/overview", limit, dashboardHandler.Overview)
	api.Post("/catalog/:slug/run", limit, dashboardHandler.RunCatalog)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/lookup", websocket.New(wsHandler.HandleConnection))

	app.Get("/metrics", metrics.MetricsHandler())

	return app
}
