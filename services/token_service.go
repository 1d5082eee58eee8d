package services

import (
	"errors"
	"log"

	"github.com/ictcert/cert_portal/models"
	"github.com/ictcert/cert_portal/utils"
)

const manualTokenLimit = 2

type TokenService struct {
	store TokenStore
	gen   *utils.CodeGenerator
}

func NewTokenService(store TokenStore, gen *utils.CodeGenerator) *TokenService {
	return &TokenService{store: store, gen: gen}
}

// IssueFromPayment mints a success-status token for a verified transaction.
// Issuance is idempotent per reference: a retrying client hitting verify
// again gets the token minted the first time, never a second one. The
// returned bool reports whether this call created the token.
func (s *TokenService) IssueFromPayment(txn *models.Transaction) (*models.Token, bool, error) {
	existing, err := s.store.FindByReference(txn.Reference)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, Internal("failed to look up token", err)
	}

	ref := txn.Reference
	token := &models.Token{
		OwnerEmail: txn.Email,
		Amount:     txn.Amount,
		Reference:  &ref,
		Status:     models.TokenStatusSuccess,
		Source:     models.TokenSourcePayment,
	}

	if err := s.create(token); err != nil {
		return nil, false, err
	}

	log.Printf("✅ Issued token %s for reference %s", token.Code, txn.Reference)
	return token, true, nil
}

// IssueManual mints a success-status token outside the payment flow, capped
// at two manual tokens per owner email.
func (s *TokenService) IssueManual(studentName, email string, amount int64) (*models.Token, error) {
	allowed, err := s.CheckEligibility(email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, Conflict("this email has reached the maximum token limit")
	}

	token := &models.Token{
		OwnerEmail: email,
		Amount:     amount,
		Status:     models.TokenStatusSuccess,
		Source:     models.TokenSourceManual,
	}
	if studentName != "" {
		token.StudentName = &studentName
	}

	if err := s.create(token); err != nil {
		return nil, err
	}

	log.Printf("✅ Manually issued token %s for %s", token.Code, email)
	return token, nil
}

// create assigns a fresh code and inserts, regenerating on a code collision.
// Fails closed once the generator's attempt budget is spent.
func (s *TokenService) create(token *models.Token) error {
	for attempt := 0; attempt < s.gen.MaxAttempts; attempt++ {
		token.Code = s.gen.Next()
		err := s.store.Create(token)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}
		return Internal("failed to create token", err)
	}
	return Internal("exhausted token code attempts", ErrDuplicateCode)
}

// CheckEligibility is the advisory pre-check for the client-facing manual
// flow. It counts existing manual tokens only; concurrent issuance can still
// race past it, which is acceptable for an eligibility hint.
func (s *TokenService) CheckEligibility(email string) (bool, error) {
	count, err := s.store.CountManual(email)
	if err != nil {
		return false, Internal("failed to count tokens", err)
	}
	return count < manualTokenLimit, nil
}

// Validate reports whether a code identifies a token that is still
// redeemable. It never mutates: consumption belongs to the application
// engine so validation and consumption stay inside one transaction there.
func (s *TokenService) Validate(code string) (bool, error) {
	token, err := s.store.FindByCode(code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, NotFoundErr("token not found")
		}
		return false, Internal("failed to look up token", err)
	}
	if token.Status != models.TokenStatusSuccess {
		return false, nil
	}
	return true, nil
}

func (s *TokenService) List() ([]models.Token, error) {
	tokens, err := s.store.List()
	if err != nil {
		return nil, Internal("failed to list tokens", err)
	}
	return tokens, nil
}
