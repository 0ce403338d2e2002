package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header used to propagate the ray id.
const HeaderName = "X-Ray-ID"

// New creates a middleware that ensures every request carries a ray id.
// An incoming id is preserved so upstream callers can correlate logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
