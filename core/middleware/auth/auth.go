package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. An empty key disables protection.
	ApiKey string
}

// New creates an API key validation middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		provided := c.Get(HeaderName)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.ApiKey)) == 1 {
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid or missing api key",
		})
	}
}
