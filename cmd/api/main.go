package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/ictcert/cert_portal/configs"
	"github.com/ictcert/cert_portal/database"
	"github.com/ictcert/cert_portal/handlers"
	"github.com/ictcert/cert_portal/jobs"
	"github.com/ictcert/cert_portal/middleware"
	"github.com/ictcert/cert_portal/notifications"
	"github.com/ictcert/cert_portal/payments"
	"github.com/ictcert/cert_portal/routes"
	"github.com/ictcert/cert_portal/services"
	"github.com/ictcert/cert_portal/utils"
	"github.com/ictcert/cert_portal/websocket"
	"github.com/robfig/cron/v3"
)

const maxConcurrentSubmissions = 25

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	gateway := payments.NewPaystackClient()
	storage := services.CloudinaryStorage{}

	ledger := services.NewLedgerService(database.NewTransactionStore(database.DB))
	tokenStore := database.NewTokenStore(database.DB)
	tokens := services.NewTokenService(tokenStore, utils.NewCodeGenerator("CBT-", 5))
	verification := services.NewVerificationService(gateway, ledger, tokens)
	applications := services.NewApplicationService(
		tokenStore,
		database.NewApplicationStore(database.DB),
		database.NewStudentStore(database.DB),
	)
	certificates := services.NewCertificateService(
		database.NewApplicationStore(database.DB),
		database.NewStudentStore(database.DB),
		database.NewReceiptStore(database.DB),
		services.NewChromePDFRenderer("templates/certificate.html"),
		storage,
		notifications.CertificateMailer{},
	)

	handlers.Init(ledger, tokens, verification, applications, certificates, gateway, storage)
	jobs.Init(ledger, verification)

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.ReconcilePendingTransactions)
	go c.Start()
	log.Println("✅ Cron job for transaction reconciliation scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Certificate Portal",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BodyLimit:         8 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.ConfigDefault("FRONTEND_ORIGIN", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Lagos",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Certificate Portal API is running",
		})
	})

	admission := middleware.NewAdmission(maxConcurrentSubmissions)

	routes.AuthRoutes(app)
	routes.PaymentRoutes(app)
	routes.TokenRoutes(app)
	routes.CertificateRoutes(app, admission)
	routes.AdminRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":" + config.ConfigDefault("PORT", "8080"))
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
