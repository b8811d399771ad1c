package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SecurityAction string

const (
	LoginSuccess   SecurityAction = "login_success"
	LoginFailed    SecurityAction = "login_failed"
	Logout         SecurityAction = "logout"
	RefreshReplay  SecurityAction = "refresh_replay"
	PasswordReset  SecurityAction = "password_reset"
	PasscodeIssued SecurityAction = "passcode_issued"
)

type SecurityLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *int64 `gorm:"index"`
	User   *User  `gorm:"constraint:OnDelete:SET NULL"`

	IP     *string        `gorm:"type:varchar(45)"`
	Action SecurityAction `gorm:"type:varchar(30);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
