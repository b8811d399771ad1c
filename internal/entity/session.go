package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated device/browser instance. It is never
// terminated directly; it dies with its refresh-token chain.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID int64     `gorm:"not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	IP        string `gorm:"type:varchar(45)"`
	UserAgent string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	RefreshAt *time.Time

	RefreshTokens []RefreshToken
}
