package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/handlers"
	"github.com/ictcert/cert_portal/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/tokens", handlers.ListTokens)
	admin.Post("/tokens", handlers.CreateManualToken)

	admin.Get("/applied-students", handlers.ListAppliedStudents)

	admin.Post("/certificates/deliver", handlers.RedeliverCertificate)
	admin.Get("/certificates/receipts", handlers.ListDeliveryReceipts)

	admin.Post("/split/create", handlers.CreateSplit)

	admin.Get("/events/ws", handlers.ServeEvents)
}
