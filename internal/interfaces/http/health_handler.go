package http

import "github.com/gofiber/fiber/v2"

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "Application is running"
// @Router       /health [get]
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Application is running")
}
