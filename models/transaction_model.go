package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// Transaction is one payment initialization attempt. The reference is
// generated by Paystack and is the only join key back to the provider.
// Rows are created on initialize, mutated only by verify, never deleted.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Reference string    `gorm:"size:255;not null;unique" json:"reference"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
