package services

import (
	"errors"
	"log"
	"time"

	"github.com/ictcert/cert_portal/models"
)

// LedgerService keeps the one-row-per-initialization transaction ledger.
type LedgerService struct {
	store TransactionStore
}

func NewLedgerService(store TransactionStore) *LedgerService {
	return &LedgerService{store: store}
}

// RecordInitialization writes a pending ledger row for a reference. It is
// idempotent: a second call with the same reference leaves the existing row
// untouched, so a double-submitted initialize can never fork the ledger.
func (s *LedgerService) RecordInitialization(email string, amount int64, reference string) (*models.Transaction, error) {
	existing, err := s.store.FindByReference(reference)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, Internal("failed to look up transaction", err)
	}

	txn := &models.Transaction{
		Email:     email,
		Amount:    amount,
		Reference: reference,
		Status:    models.TxStatusPending,
	}
	if err := s.store.Create(txn); err != nil {
		return nil, Internal("failed to record transaction", err)
	}
	return txn, nil
}

// ApplyVerification stamps the provider's final status onto the ledger row.
// An unknown reference is a protocol violation (verify before initialize, or
// a forged reference) and must never create a row.
func (s *LedgerService) ApplyVerification(reference, status string) (*models.Transaction, error) {
	txn, err := s.store.UpdateStatus(reference, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NotFoundErr("transaction not found")
		}
		return nil, Internal("failed to update transaction", err)
	}

	log.Printf("Ledger: reference %s verified with status %s", reference, status)
	return txn, nil
}

// StalePending lists pending transactions older than the cutoff, for the
// reconciliation job.
func (s *LedgerService) StalePending(olderThan time.Time, limit int) ([]models.Transaction, error) {
	txns, err := s.store.FindStalePending(olderThan, limit)
	if err != nil {
		return nil, Internal("failed to list stale transactions", err)
	}
	return txns, nil
}
