package entity

import "time"

// RoleType is the business role of an account inside the café,
// independent of the schema role used for authorization.
type RoleType string

const (
	RoleTypeAdmin    RoleType = "admin"
	RoleTypeMesero   RoleType = "mesero"
	RoleTypeCajero   RoleType = "cajero"
	RoleTypeChef     RoleType = "chef"
	RoleTypeAyudante RoleType = "ayudante"
)

type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     *string `gorm:"type:varchar(100);uniqueIndex"`
	PasswordHash string  `gorm:"type:text;not null"`

	// Role is the opaque schema role; the admin flag on access tokens is
	// derived by comparing it with the configured admin role value.
	Role     string   `gorm:"type:varchar(255);not null;index"`
	RoleType RoleType `gorm:"type:varchar(20);default:'mesero'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Sessions []Session
	Employee *Employee
}
