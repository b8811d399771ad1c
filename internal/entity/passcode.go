package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passcode is a one-time emailed verification code. Only the most recently
// issued, non-revoked, non-expired row for a target is valid; older rows
// are superseded by recency, not revoked explicitly.
type Passcode struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// PassObject is the target the code proves control of (an email).
	PassObject string `gorm:"type:varchar(255);not null;index"`
	CodeHash   string `gorm:"type:text;not null"`

	ValidUntil time.Time
	Revoked    bool `gorm:"default:false;not null"`

	CreatedAt time.Time
}
