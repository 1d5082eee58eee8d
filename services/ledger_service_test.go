package services

import (
	"testing"
	"time"

	"github.com/ictcert/cert_portal/models"
)

func TestLedgerService_RecordInitialization(t *testing.T) {
	t.Run("Given a new reference Then a pending row is created", func(t *testing.T) {
		store := newMemTransactionStore()
		svc := NewLedgerService(store)

		txn, err := svc.RecordInitialization("a@x.com", 500, "ref-001")
		if err != nil {
			t.Fatalf("RecordInitialization failed: %v", err)
		}
		if txn.Status != models.TxStatusPending {
			t.Errorf("expected pending, got %s", txn.Status)
		}
	})

	t.Run("Given the reference already recorded Then no duplicate is created", func(t *testing.T) {
		store := newMemTransactionStore()
		svc := NewLedgerService(store)

		first, _ := svc.RecordInitialization("a@x.com", 500, "ref-001")
		second, err := svc.RecordInitialization("a@x.com", 500, "ref-001")
		if err != nil {
			t.Fatalf("second record failed: %v", err)
		}
		if second.ID != first.ID {
			t.Error("expected the original row back, not a new one")
		}
		if len(store.byRef) != 1 {
			t.Errorf("expected 1 ledger row, got %d", len(store.byRef))
		}
	})
}

func TestLedgerService_ApplyVerification(t *testing.T) {
	t.Run("Given an unknown reference Then verification is not-found and creates nothing", func(t *testing.T) {
		store := newMemTransactionStore()
		svc := NewLedgerService(store)

		_, err := svc.ApplyVerification("forged-ref", models.TxStatusSuccess)
		if KindOf(err) != KindNotFound {
			t.Fatalf("expected not-found, got %v", err)
		}
		if len(store.byRef) != 0 {
			t.Error("verification must never create a ledger row")
		}
	})

	t.Run("Given a recorded reference Then the status is stamped in place", func(t *testing.T) {
		store := newMemTransactionStore()
		svc := NewLedgerService(store)
		svc.RecordInitialization("a@x.com", 500, "ref-001")

		txn, err := svc.ApplyVerification("ref-001", models.TxStatusSuccess)
		if err != nil {
			t.Fatalf("ApplyVerification failed: %v", err)
		}
		if txn.Status != models.TxStatusSuccess {
			t.Errorf("expected success, got %s", txn.Status)
		}
	})
}

func TestLedgerService_StalePending(t *testing.T) {
	store := newMemTransactionStore()
	svc := NewLedgerService(store)
	svc.RecordInitialization("a@x.com", 500, "ref-old")
	store.byRef["ref-old"].CreatedAt = time.Now().Add(-time.Hour)
	svc.RecordInitialization("b@x.com", 500, "ref-new")

	stale, err := svc.StalePending(time.Now().Add(-10*time.Minute), 50)
	if err != nil {
		t.Fatalf("StalePending failed: %v", err)
	}
	if len(stale) != 1 || stale[0].Reference != "ref-old" {
		t.Errorf("expected only ref-old to be stale, got %v", stale)
	}
}
