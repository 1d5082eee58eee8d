package jobs

import (
	"errors"
	"log"
	"time"

	"github.com/ictcert/cert_portal/services"
)

var (
	ledger       *services.LedgerService
	verification *services.VerificationService
)

func Init(l *services.LedgerService, v *services.VerificationService) {
	ledger = l
	verification = v
}

const reconcileBatchSize = 50

// ReconcilePendingTransactions re-verifies transactions that initialized but
// never saw a verify call, usually because the client closed the Paystack
// popup without returning. Safe to run repeatedly: verification and token
// issuance are both idempotent per reference.
func ReconcilePendingTransactions() {
	log.Println("Running job: ReconcilePendingTransactions...")

	cutoff := time.Now().Add(-10 * time.Minute)
	stale, err := ledger.StalePending(cutoff, reconcileBatchSize)
	if err != nil {
		log.Printf("Error listing stale transactions: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	for _, txn := range stale {
		result, err := verification.Run(txn.Reference)
		if err != nil {
			var svcErr *services.Error
			if errors.As(err, &svcErr) && svcErr.Kind == services.KindValidation {
				log.Printf("Reference %s settled as %s", txn.Reference, result.Transaction.Status)
				continue
			}
			log.Printf("Error reconciling reference %s: %v", txn.Reference, err)
			continue
		}
		if result.Issued {
			log.Printf("✅ Reconciled reference %s, token %s issued", txn.Reference, result.Token.Code)
		}
	}
}
