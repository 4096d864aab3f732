package validation

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	MaxLookupLength     int
	AllowedContentTypes []string
	Logger              *zap.Logger
}

// Middleware rejects malformed dashboard requests before they reach a
// handler: oversized or non-printable lookup input and unknown catalog
// sources.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxLookupLength == 0 {
		cfg.MaxLookupLength = 64
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut {
			contentType := c.Get(fiber.HeaderContentType)
			if contentType != "" && !allowedContentType(contentType, cfg.AllowedContentTypes) {
				return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
					"error": "Unsupported content type",
				})
			}
		}

		path := c.Path()

		if strings.HasPrefix(path, "/api/v1/lookup") {
			vehicle := c.Query("vehicle")

			if len(vehicle) > cfg.MaxLookupLength {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Vehicle number exceeds maximum length",
				})
			}

			if !printable(vehicle) {
				cfg.Logger.Warn("Rejected lookup with control characters",
					zap.String("ip", c.IP()),
				)
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid vehicle number",
				})
			}
		}

		if strings.HasPrefix(path, "/api/v1/catalog/") && c.Method() == fiber.MethodPost {
			if !validSource(c.Query("source")) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "source must be store or extract",
				})
			}
		}

		return c.Next()
	}
}

func allowedContentType(contentType string, allowed []string) bool {
	for _, allowedType := range allowed {
		if strings.Contains(contentType, allowedType) {
			return true
		}
	}
	return false
}

func printable(input string) bool {
	for _, r := range input {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func validSource(source string) bool {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", "store", "extract":
		return true
	}
	return false
}
