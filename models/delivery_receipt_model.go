package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryReceipt records one attempt to render and email a certificate.
// A failed receipt is the operator's cue to re-trigger delivery; the
// application and token state are never rolled back on delivery failure.
type DeliveryReceipt struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	Matric         string    `gorm:"size:50;not null;index" json:"matric"`
	CertificateURL string    `gorm:"type:text" json:"certificate_url"`
	EmailedTo      string    `gorm:"size:255;not null" json:"emailed_to"`
	Status         string    `gorm:"size:20;not null" json:"status"`
	Error          *string   `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
