package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TokenStatusPending = "pending"
	TokenStatusSuccess = "success"
	TokenStatusUsed    = "used"

	TokenSourcePayment = "payment"
	TokenSourceManual  = "manual"
)

// Token is the single-use capability that authorizes one certificate
// application. Status only ever moves pending -> success -> used.
// Reference is nil for manually issued tokens.
type Token struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentName *string   `gorm:"size:255" json:"student_name,omitempty"`
	OwnerEmail  string    `gorm:"size:255;not null;index" json:"owner_email"`
	Amount      int64     `json:"amount"`
	Reference   *string   `gorm:"size:255;unique" json:"reference,omitempty"`
	Code        string    `gorm:"size:20;not null;unique" json:"code"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Source      string    `gorm:"size:20;not null;default:'manual'" json:"source"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
