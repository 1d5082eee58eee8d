package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the full applicant profile, created when an application is
// submitted with complete profile data. It is the second lifecycle stage of
// an applicant; CertificateApplication is the first.
type Student struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName    string    `gorm:"size:255;not null" json:"full_name"`
	Matric      string    `gorm:"size:50;not null;unique" json:"matric"`
	Department  string    `gorm:"size:100" json:"department"`
	Level       string    `gorm:"size:20" json:"level"`
	Phone       string    `gorm:"size:30" json:"phone"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	PassportURL string    `gorm:"type:text" json:"passport_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
