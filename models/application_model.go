package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// CertificateApplication is the lightweight per-matric record created at
// submission time. Matric is the primary uniqueness key: at most one
// application may ever exist per matric number.
type CertificateApplication struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Matric    string    `gorm:"size:50;not null;unique" json:"matric"`
	TokenCode string    `gorm:"size:20;not null" json:"token_code"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`

	UpdatedAt time.Time `json:"updated_at"`
}
