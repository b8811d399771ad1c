package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken stores only the keyed digest of the opaque token handed to
// the client. At most one non-revoked, non-expired row per rotation chain
// is ever honored; rotation revokes the old row and creates one new row on
// the same session.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Session   Session   `gorm:"constraint:OnDelete:CASCADE"`

	TokenDigest string `gorm:"type:text;not null;index"`

	ExpiresAt time.Time
	Revoked   bool `gorm:"default:false;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
