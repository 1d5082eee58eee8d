package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/services"
	"github.com/ictcert/cert_portal/websocket"
)

type ApplyCertificateRequest struct {
	Email  string `json:"email" form:"email" validate:"required,email"`
	Matric string `json:"matric" form:"matric" validate:"required"`
	Token  string `json:"token" form:"token" validate:"required"`

	// Extended profile, multipart shape only.
	FullName string `json:"full_name,omitempty" form:"full_name"`
	Phone    string `json:"phone,omitempty" form:"phone"`
}

// ApplyCertificate is the single submission endpoint. A JSON body records
// the lightweight application; a multipart body with the full profile and a
// passport photo additionally promotes the applicant to a Student record and
// triggers certificate delivery in the same request.
func ApplyCertificate(c *fiber.Ctx) error {
	var req ApplyCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email, matric number, and token are required."})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	submit := services.SubmitRequest{
		Email:     req.Email,
		Matric:    req.Matric,
		TokenCode: req.Token,
	}

	withProfile := strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
	if withProfile {
		if req.FullName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Full name is required with a profile submission."})
		}

		fileHeader, err := c.FormFile("passport")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Passport photo is required with a profile submission."})
		}
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read passport photo."})
		}
		defer file.Close()

		passportURL, err := passports.UploadPassport(file, req.Matric)
		if err != nil {
			log.Printf("🔥 Passport upload failed for %s: %v", req.Matric, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to store passport photo."})
		}

		submit.Profile = &services.Profile{
			FullName:    req.FullName,
			Phone:       req.Phone,
			PassportURL: passportURL,
		}
	}

	result, err := applications.Submit(submit)
	if err != nil {
		return respondError(c, err)
	}

	websocket.Publish(websocket.Event{
		Type:   websocket.EventApplicationSubmitted,
		Email:  req.Email,
		Matric: req.Matric,
	})

	if result.Student != nil {
		// Delivery is best-effort: the application and token transition are
		// already committed and stay committed whatever happens here.
		if _, err := certificates.Deliver(result.Application, result.Student); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Application submitted, but certificate delivery failed. An operator can re-trigger delivery.",
			})
		}
		websocket.Publish(websocket.Event{
			Type:   websocket.EventCertificateDelivered,
			Email:  req.Email,
			Matric: req.Matric,
		})
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Certificate applied and emailed successfully."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Certificate application submitted successfully."})
}
