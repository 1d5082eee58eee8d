package services

import (
	"time"

	"github.com/ictcert/cert_portal/models"
	"github.com/ictcert/cert_portal/payments"
)

// The persistence engine is an external collaborator: services only ever see
// these interfaces. GORM-backed implementations live in the database package,
// in-memory mocks live next to the tests.

type TransactionStore interface {
	FindByReference(reference string) (*models.Transaction, error)
	Create(txn *models.Transaction) error
	// UpdateStatus mutates the row in place and returns it; ErrNotFound when
	// the reference was never initialized.
	UpdateStatus(reference, status string) (*models.Transaction, error)
	FindStalePending(olderThan time.Time, limit int) ([]models.Transaction, error)
}

type TokenStore interface {
	FindByCode(code string) (*models.Token, error)
	FindByReference(reference string) (*models.Token, error)
	CountManual(email string) (int64, error)
	// Create returns ErrDuplicateCode on a code collision so issuance can
	// regenerate and retry.
	Create(token *models.Token) error
	// ConsumeWithApplication atomically creates the application (and the
	// student profile when non-nil) and flips the token success -> used via a
	// compare-and-swap on status. Returns ErrTokenConsumed when the CAS
	// misses and ErrDuplicateMatric on the matric unique index; either way
	// nothing is persisted.
	ConsumeWithApplication(code string, app *models.CertificateApplication, student *models.Student) error
	List() ([]models.Token, error)
}

type ApplicationStore interface {
	FindByMatric(matric string) (*models.CertificateApplication, error)
}

type StudentStore interface {
	FindByMatric(matric string) (*models.Student, error)
	List() ([]models.Student, error)
}

type ReceiptStore interface {
	Create(receipt *models.DeliveryReceipt) error
	FindByMatric(matric string) ([]models.DeliveryReceipt, error)
}

// PaymentGateway is the slice of the Paystack client the verification flow
// needs; the full client also does initialization and split management.
type PaymentGateway interface {
	VerifyTransaction(reference string) (*payments.VerifyResult, error)
}
