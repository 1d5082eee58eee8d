package services

import (
	"github.com/ictcert/cert_portal/models"
)

// VerificationService runs the verify half of the payment cycle: confirm the
// reference with the provider, stamp the ledger, and issue the token. Every
// step is idempotent per reference, so the whole flow can be re-run by a
// polling client or the reconciliation job without minting twice.
type VerificationService struct {
	gateway PaymentGateway
	ledger  *LedgerService
	tokens  *TokenService
}

func NewVerificationService(gateway PaymentGateway, ledger *LedgerService, tokens *TokenService) *VerificationService {
	return &VerificationService{gateway: gateway, ledger: ledger, tokens: tokens}
}

type VerificationResult struct {
	Transaction *models.Transaction
	Token       *models.Token
	Issued      bool
}

// Run verifies one reference end to end. Provider faults surface as upstream
// errors with the raw payload preserved; a confirmed-but-unsuccessful payment
// is a validation rejection carrying the updated transaction.
func (s *VerificationService) Run(reference string) (*VerificationResult, error) {
	outcome, err := s.gateway.VerifyTransaction(reference)
	if err != nil {
		return nil, Upstream("payment verification failed", err)
	}

	txn, err := s.ledger.ApplyVerification(reference, outcome.Status)
	if err != nil {
		return nil, err
	}

	if outcome.Status != models.TxStatusSuccess {
		return &VerificationResult{Transaction: txn}, Validation("payment not successful")
	}

	token, issued, err := s.tokens.IssueFromPayment(txn)
	if err != nil {
		return nil, err
	}

	return &VerificationResult{Transaction: txn, Token: token, Issued: issued}, nil
}
