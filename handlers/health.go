package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealthCheck reports service status for deployment checks.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"service": "go-tasks",
		"version": "0.1.0",
	})
}
