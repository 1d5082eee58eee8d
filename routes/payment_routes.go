package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/handlers"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/payment/initialize", handlers.InitializePayment)
	api.Get("/payment/verify/:reference", handlers.VerifyPayment)
	api.Post("/transactions/save", handlers.SaveTransaction)
}
