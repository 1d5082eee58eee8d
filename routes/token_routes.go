package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/handlers"
)

func TokenRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/tokens/check-email", handlers.CheckEmail)
	api.Get("/tokens/validate/:code", handlers.ValidateToken)
}
