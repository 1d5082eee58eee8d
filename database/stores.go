package database

import (
	"errors"
	"time"

	"github.com/ictcert/cert_portal/models"
	"github.com/ictcert/cert_portal/services"
	"gorm.io/gorm"
)

// GORM-backed implementations of the service store interfaces. All driver
// errors are translated here; services only ever see the sentinels from the
// services package.

type TransactionGormStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionGormStore {
	return &TransactionGormStore{db: db}
}

func (s *TransactionGormStore) FindByReference(reference string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionGormStore) Create(txn *models.Transaction) error {
	return s.db.Create(txn).Error
}

func (s *TransactionGormStore) UpdateStatus(reference, status string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reference = ?", reference).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrNotFound
			}
			return err
		}
		txn.Status = status
		return tx.Save(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionGormStore) FindStalePending(olderThan time.Time, limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.
		Where("status = ? AND created_at < ?", models.TxStatusPending, olderThan).
		Order("created_at asc").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

type TokenGormStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenGormStore {
	return &TokenGormStore{db: db}
}

func (s *TokenGormStore) FindByCode(code string) (*models.Token, error) {
	var token models.Token
	if err := s.db.Where("code = ?", code).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (s *TokenGormStore) FindByReference(reference string) (*models.Token, error) {
	var token models.Token
	if err := s.db.Where("reference = ?", reference).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (s *TokenGormStore) CountManual(email string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Token{}).
		Where("owner_email = ? AND source = ?", email, models.TokenSourceManual).
		Count(&count).Error
	return count, err
}

func (s *TokenGormStore) Create(token *models.Token) error {
	if err := s.db.Create(token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Distinguish a code collision (retryable) from a reference
			// collision (concurrent issuance already won).
			var existing models.Token
			if s.db.Where("code = ?", token.Code).First(&existing).Error == nil {
				return services.ErrDuplicateCode
			}
		}
		return err
	}
	return nil
}

func (s *TokenGormStore) ConsumeWithApplication(code string, app *models.CertificateApplication, student *models.Student) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return services.ErrDuplicateMatric
			}
			return err
		}

		// Compare-and-swap on status: exactly one concurrent submission for
		// this code can move success -> used. Losers roll the whole
		// transaction back, application row included.
		res := tx.Model(&models.Token{}).
			Where("code = ? AND status = ?", code, models.TokenStatusSuccess).
			Update("status", models.TokenStatusUsed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrTokenConsumed
		}

		if student != nil {
			if err := tx.Create(student).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return services.ErrDuplicateStudent
				}
				return err
			}
		}
		return nil
	})
}

func (s *TokenGormStore) List() ([]models.Token, error) {
	var tokens []models.Token
	err := s.db.Order("created_at desc").Find(&tokens).Error
	return tokens, err
}

type ApplicationGormStore struct {
	db *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationGormStore {
	return &ApplicationGormStore{db: db}
}

func (s *ApplicationGormStore) FindByMatric(matric string) (*models.CertificateApplication, error) {
	var app models.CertificateApplication
	if err := s.db.Where("matric = ?", matric).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

type StudentGormStore struct {
	db *gorm.DB
}

func NewStudentStore(db *gorm.DB) *StudentGormStore {
	return &StudentGormStore{db: db}
}

func (s *StudentGormStore) FindByMatric(matric string) (*models.Student, error) {
	var student models.Student
	if err := s.db.Where("matric = ?", matric).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *StudentGormStore) List() ([]models.Student, error) {
	var students []models.Student
	err := s.db.Order("created_at desc").Find(&students).Error
	return students, err
}

type ReceiptGormStore struct {
	db *gorm.DB
}

func NewReceiptStore(db *gorm.DB) *ReceiptGormStore {
	return &ReceiptGormStore{db: db}
}

func (s *ReceiptGormStore) Create(receipt *models.DeliveryReceipt) error {
	return s.db.Create(receipt).Error
}

func (s *ReceiptGormStore) FindByMatric(matric string) ([]models.DeliveryReceipt, error) {
	var receipts []models.DeliveryReceipt
	err := s.db.Where("matric = ?", matric).Order("created_at desc").Find(&receipts).Error
	return receipts, err
}
