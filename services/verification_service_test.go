package services

import (
	"errors"
	"testing"

	"github.com/ictcert/cert_portal/models"
	"github.com/ictcert/cert_portal/payments"
)

func newVerification(gateway *mockGateway) (*VerificationService, *memTransactionStore, *memStore) {
	txStore := newMemTransactionStore()
	tokenStore := newMemStore()
	ledger := NewLedgerService(txStore)
	tokens := newTokenService(tokenStore)
	return NewVerificationService(gateway, ledger, tokens), txStore, tokenStore
}

func TestVerificationService_Run(t *testing.T) {
	t.Run("Given a successful payment Then the ledger is stamped and a token issued once", func(t *testing.T) {
		gateway := &mockGateway{result: &payments.VerifyResult{Status: "success", AmountMinor: 50000}}
		svc, txStore, _ := newVerification(gateway)
		txStore.Create(&models.Transaction{Email: "a@x.com", Amount: 500, Reference: "ref-001", Status: models.TxStatusPending})

		result, err := svc.Run("ref-001")
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !result.Issued {
			t.Error("expected a token to be issued on first verify")
		}
		if result.Transaction.Status != models.TxStatusSuccess {
			t.Errorf("expected ledger status success, got %s", result.Transaction.Status)
		}
		if result.Token.OwnerEmail != "a@x.com" {
			t.Errorf("token owner should be the paying email, got %s", result.Token.OwnerEmail)
		}
	})

	t.Run("Given verify called twice Then the same code returns and no second token is minted", func(t *testing.T) {
		gateway := &mockGateway{result: &payments.VerifyResult{Status: "success", AmountMinor: 50000}}
		svc, txStore, tokenStore := newVerification(gateway)
		txStore.Create(&models.Transaction{Email: "a@x.com", Amount: 500, Reference: "ref-001", Status: models.TxStatusPending})

		first, err := svc.Run("ref-001")
		if err != nil {
			t.Fatalf("first Run failed: %v", err)
		}
		second, err := svc.Run("ref-001")
		if err != nil {
			t.Fatalf("second Run failed: %v", err)
		}

		if second.Issued {
			t.Error("second verify must not mint a token")
		}
		if second.Token.Code != first.Token.Code {
			t.Errorf("expected the same code, got %s then %s", first.Token.Code, second.Token.Code)
		}
		all, _ := tokenStore.List()
		if len(all) != 1 {
			t.Errorf("expected 1 token total, got %d", len(all))
		}
	})

	t.Run("Given the reference was never initialized Then verify is not-found and creates nothing", func(t *testing.T) {
		gateway := &mockGateway{result: &payments.VerifyResult{Status: "success"}}
		svc, txStore, tokenStore := newVerification(gateway)

		_, err := svc.Run("forged-ref")
		if KindOf(err) != KindNotFound {
			t.Fatalf("expected not-found, got %v", err)
		}
		if len(txStore.byRef) != 0 {
			t.Error("a forged reference must not create a ledger row")
		}
		if all, _ := tokenStore.List(); len(all) != 0 {
			t.Error("a forged reference must not mint a token")
		}
	})

	t.Run("Given the provider reports failure Then no token is issued and the status is recorded", func(t *testing.T) {
		gateway := &mockGateway{result: &payments.VerifyResult{Status: "failed"}}
		svc, txStore, tokenStore := newVerification(gateway)
		txStore.Create(&models.Transaction{Email: "a@x.com", Amount: 500, Reference: "ref-001", Status: models.TxStatusPending})

		result, err := svc.Run("ref-001")
		if KindOf(err) != KindValidation {
			t.Fatalf("expected a validation rejection, got %v", err)
		}
		if result.Transaction.Status != "failed" {
			t.Errorf("expected the ledger to record the failed status, got %s", result.Transaction.Status)
		}
		if all, _ := tokenStore.List(); len(all) != 0 {
			t.Error("a failed payment must not mint a token")
		}
	})

	t.Run("Given the provider errors Then the fault surfaces as upstream with the payload preserved", func(t *testing.T) {
		providerErr := &payments.ProviderError{StatusCode: 503, Body: `{"status":false,"message":"down"}`}
		gateway := &mockGateway{err: providerErr}
		svc, txStore, _ := newVerification(gateway)
		txStore.Create(&models.Transaction{Email: "a@x.com", Amount: 500, Reference: "ref-001", Status: models.TxStatusPending})

		_, err := svc.Run("ref-001")
		if KindOf(err) != KindUpstream {
			t.Fatalf("expected an upstream error, got %v", err)
		}
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Fatal("expected a services.Error")
		}
		if svcErr.Err != providerErr {
			t.Error("expected the provider error to be preserved for diagnostics")
		}
		txn, _ := txStore.FindByReference("ref-001")
		if txn.Status != models.TxStatusPending {
			t.Error("a provider fault must leave the ledger untouched")
		}
	})
}
