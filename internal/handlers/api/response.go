package api

import (
	"github.com/gofiber/fiber/v3"

	"seodash/internal/queries"
)

// jsonSuccess returns a 200 response with the result wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, result any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// queryError maps an engine error to its HTTP status. Validation and not-found
// messages are returned verbatim.
func queryError(c fiber.Ctx, err error) error {
	switch {
	case queries.IsValidation(err):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case queries.IsNotFound(err):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "query execution failed")
	}
}
