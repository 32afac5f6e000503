package utils

import "github.com/gofiber/fiber/v2"

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response wrapped in the standard
// { success, data } envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, fiber.Map{"success": true, "data": data})
}

// SuccessRaw sends a successful envelope with caller-supplied top-level
// fields merged in (used by the overrides endpoint which returns the
// resolved maps alongside success).
func SuccessRaw(c *fiber.Ctx, payload fiber.Map) error {
	payload["success"] = true
	return Respond(c, fiber.StatusOK, payload)
}

func errorPayload(message string) fiber.Map {
	return fiber.Map{"success": false, "error": message}
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, errorPayload(message))
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, errorPayload(message))
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, errorPayload(message))
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, errorPayload(message))
}

// BadGateway sends a JSON error response with status 502 for upstream failures.
func BadGateway(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadGateway, errorPayload(message))
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, errorPayload(message))
}
