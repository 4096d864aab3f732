package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/catalog"
	"github.com/securecheck/backend/internal/query"
	"github.com/securecheck/backend/pkg/logger"
)

type DashboardHandler struct {
	queryEngine *query.Engine
}

func NewDashboardHandler(queryEngine *query.Engine) *DashboardHandler {
	return &DashboardHandler{
		queryEngine: queryEngine,
	}
}

// Overview answers 200 even when the store is down; the notice carries
// the problem.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	resp := h.queryEngine.Overview(c.UserContext())

	return c.JSON(fiber.Map{
		"id":         resp.ID,
		"status":     resp.Status.String(),
		"table":      resp.Table,
		"metrics":    resp.Summary.Metrics(),
		"notice":     resp.Notice,
		"latency_ms": resp.LatencyMS,
	})
}

func (h *DashboardHandler) ListCatalog(c *fiber.Ctx) error {
	entries := h.queryEngine.Catalog()

	items := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		items = append(items, fiber.Map{
			"id":    int(e.ID),
			"slug":  e.Slug,
			"label": e.Label,
			"sql":   e.SQL,
		})
	}

	return c.JSON(fiber.Map{
		"queries": items,
	})
}

func (h *DashboardHandler) RunCatalog(c *fiber.Ctx) error {
	source, err := query.ParseSource(c.Query("source"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "source must be store or extract",
		})
	}

	resp, err := h.queryEngine.RunCatalog(c.UserContext(), c.Params("slug"), source)
	if errors.Is(err, catalog.ErrUnknownQuery) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown catalog query",
		})
	}
	if err != nil {
		logger.Error("Failed to run catalog query", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to run catalog query",
		})
	}

	return c.JSON(fiber.Map{
		"id":         resp.ID,
		"query":      resp.Entry.Label,
		"slug":       resp.Entry.Slug,
		"source":     resp.Source,
		"table":      resp.Table,
		"notice":     resp.Notice,
		"latency_ms": resp.LatencyMS,
	})
}

func (h *DashboardHandler) Lookup(c *fiber.Ctx) error {
	return c.JSON(lookupPayload(h.queryEngine.Lookup(c.UserContext(), c.Query("vehicle"))))
}

func lookupPayload(resp *query.LookupResponse) fiber.Map {
	descriptions := resp.Descriptions
	if descriptions == nil {
		descriptions = []string{}
	}
	return fiber.Map{
		"id":           resp.ID,
		"query":        resp.Query,
		"status":       resp.Status.String(),
		"matches":      len(resp.Matches),
		"descriptions": descriptions,
		"notice":       resp.Notice,
		"latency_ms":   resp.LatencyMS,
	}
}
