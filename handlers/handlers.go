package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/ictcert/cert_portal/payments"
	"github.com/ictcert/cert_portal/services"
)

// PassportUploader is the photo-storage collaborator for the multipart
// submission shape.
type PassportUploader interface {
	UploadPassport(file io.Reader, matric string) (string, error)
}

var (
	ledger       *services.LedgerService
	tokens       *services.TokenService
	verification *services.VerificationService
	applications *services.ApplicationService
	certificates *services.CertificateService
	gateway      *payments.PaystackClient
	passports    PassportUploader
)

func Init(
	l *services.LedgerService,
	t *services.TokenService,
	v *services.VerificationService,
	a *services.ApplicationService,
	c *services.CertificateService,
	g *payments.PaystackClient,
	p PassportUploader,
) {
	ledger = l
	tokens = t
	verification = v
	applications = a
	certificates = c
	gateway = g
	passports = p
}

// respondError maps the service error taxonomy onto HTTP statuses. Upstream
// errors keep the provider's raw payload in the response for diagnostics.
func respondError(c *fiber.Ctx, err error) error {
	switch services.KindOf(err) {
	case services.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case services.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case services.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case services.KindUpstream:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment provider error", "details": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
