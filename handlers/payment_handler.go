package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/services"
	"github.com/ictcert/cert_portal/websocket"
)

type InitializePaymentRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// InitializePayment starts a Paystack checkout and records the pending
// ledger row under the provider-generated reference.
func InitializePayment(c *fiber.Ctx) error {
	var req InitializePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := gateway.InitializeTransaction(req.Email, req.Amount)
	if err != nil {
		log.Printf("🔥 Paystack initialize failed: %v", err)
		return respondError(c, services.Upstream("payment initialization failed", err))
	}

	if _, err := ledger.RecordInitialization(req.Email, req.Amount, result.Reference); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"authorization_url": result.AuthorizationURL,
		"reference":         result.Reference,
	})
}

// VerifyPayment confirms a reference with Paystack and issues the access
// token. Safe to call repeatedly: a retrying client gets the same token back.
func VerifyPayment(c *fiber.Ctx) error {
	reference := c.Params("reference")

	result, err := verification.Run(reference)
	if err != nil {
		if services.KindOf(err) == services.KindValidation {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Payment not successful",
				"status":  result.Transaction.Status,
			})
		}
		return respondError(c, err)
	}

	if result.Issued {
		websocket.Publish(websocket.Event{
			Type:  websocket.EventTokenIssued,
			Email: result.Token.OwnerEmail,
			Code:  result.Token.Code,
		})
	}

	message := "Payment already verified, token exists"
	if result.Issued {
		message = "Payment verified and token issued"
	}
	return c.JSON(fiber.Map{
		"message":     message,
		"token":       result.Token.Code,
		"transaction": result.Transaction,
	})
}

type SaveTransactionRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Reference string `json:"reference" validate:"required"`
}

// SaveTransaction is the manual ledger entry point used when the popup flow
// completes client-side before initialize was recorded. Idempotent per
// reference like the normal path.
func SaveTransaction(c *fiber.Ctx) error {
	var req SaveTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := ledger.RecordInitialization(req.Email, req.Amount, req.Reference); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction saved"})
}

// CreateSplit creates a reusable Paystack split group for revenue sharing.
func CreateSplit(c *fiber.Ctx) error {
	type SplitRequest struct {
		Name       string `json:"name" validate:"required"`
		Subaccount string `json:"subaccount" validate:"required"`
		Share      int    `json:"share" validate:"required,gt=0,lte=100"`
	}
	var req SplitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := gateway.CreateSplit(req.Name, req.Subaccount, req.Share)
	if err != nil {
		log.Printf("🔥 Split creation failed: %v", err)
		return respondError(c, services.Upstream("failed to create split group", err))
	}

	return c.JSON(fiber.Map{
		"message":    "Split group created successfully",
		"split_code": result.SplitCode,
		"full_data":  result.Raw,
	})
}
