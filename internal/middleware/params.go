package middleware

import (
	"github.com/gofiber/fiber/v3"

	"seodash/internal/validation"
)

// RequireIdentifiers rejects requests whose named route parameters are not valid
// identifiers before they reach the handler.
func RequireIdentifiers(names ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, name := range names {
			if !validation.ValidateIdentifier(c.Params(name)) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   "invalid " + name,
				})
			}
		}
		return c.Next()
	}
}
