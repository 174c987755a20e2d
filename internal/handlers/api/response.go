package api

import "github.com/gofiber/fiber/v3"

// jsonSuccess wraps data in the standard success envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error envelope with the given HTTP status code.
// Only structurally invalid requests reach this path; degraded enrichment
// or store failures are absorbed upstream and still return 200.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
