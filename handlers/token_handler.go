package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/services"
)

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CheckEmail is the advisory pre-check for the manual token flow: it answers
// whether this email is still under the manual token cap.
func CheckEmail(c *fiber.Ctx) error {
	var req CheckEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"allowed": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"allowed": false, "message": "Invalid email format"})
	}

	allowed, err := tokens.CheckEligibility(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"allowed": false,
			"message": "This email has reached the maximum token limit.",
		})
	}

	return c.JSON(fiber.Map{"allowed": true})
}

// ValidateToken reports whether a code is still redeemable. Read-only: the
// token is only consumed inside the application submission transaction.
func ValidateToken(c *fiber.Ctx) error {
	code := c.Params("code")

	valid, err := tokens.Validate(code)
	if err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) && svcErr.Kind == services.KindNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"valid": false, "message": "Token not found."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"valid": false, "message": "Server error."})
	}

	if !valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "message": "Token is not valid or already used."})
	}
	return c.JSON(fiber.Map{"valid": true})
}
