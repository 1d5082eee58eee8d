package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/notifications"
)

// ListTokens returns every token, newest first.
func ListTokens(c *fiber.Ctx) error {
	all, err := tokens.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(all)
}

type CreateManualTokenRequest struct {
	StudentName string `json:"student_name"`
	Email       string `json:"email" validate:"required,email"`
	Amount      int64  `json:"amount" validate:"gte=0"`
}

// CreateManualToken issues a token outside the payment flow, subject to the
// per-email manual cap. The code is emailed to the owner.
func CreateManualToken(c *fiber.Ctx) error {
	var req CreateManualTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := tokens.IssueManual(req.StudentName, req.Email, req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	go notifications.SendEmail(
		req.StudentName,
		req.Email,
		"Your Certificate Access Token",
		fmt.Sprintf("<h1>Access Token</h1><p>Your certificate application token is <b>%s</b>. It can be used exactly once.</p>", token.Code),
	)

	return c.Status(fiber.StatusCreated).JSON(token)
}

// ListAppliedStudents returns the promoted student profiles, newest first.
func ListAppliedStudents(c *fiber.Ctx) error {
	students, err := applications.AppliedStudents()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(students)
}

type RedeliverRequest struct {
	// Matric lives in the body because matric numbers contain slashes.
	Matric string `json:"matric" validate:"required"`
}

// RedeliverCertificate re-runs the delivery pipeline for a committed
// application without re-running validation or touching the consumed token.
func RedeliverCertificate(c *fiber.Ctx) error {
	var req RedeliverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	receipt, err := certificates.Redeliver(req.Matric)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Certificate re-delivered successfully.",
		"receipt": receipt,
	})
}

// ListDeliveryReceipts lists every delivery attempt for a matric.
func ListDeliveryReceipts(c *fiber.Ctx) error {
	matric := c.Query("matric")
	if matric == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "matric query parameter is required"})
	}

	receipts, err := certificates.Receipts(matric)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipts)
}
