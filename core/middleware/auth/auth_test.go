package auth_test

import (
	"net/http/httptest"
	"testing"

	"delivery-reconciler/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newApp(apiKey string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: apiKey}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAuth(t *testing.T) {
	t.Run("Missing Key", func(t *testing.T) {
		app := newApp("secret")
		req := httptest.NewRequest("GET", "/ping", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Key", func(t *testing.T) {
		app := newApp("secret")
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "nope")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Key", func(t *testing.T) {
		app := newApp("secret")
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set(auth.HeaderName, "secret")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Disabled When Unset", func(t *testing.T) {
		app := newApp("")
		req := httptest.NewRequest("GET", "/ping", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
