package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/handlers"
	"github.com/ictcert/cert_portal/middleware"
)

func CertificateRoutes(app *fiber.App, admission *middleware.Admission) {
	api := app.Group("/api/v1")

	api.Post("/apply-certificate", admission.Limit(), handlers.ApplyCertificate)
}
