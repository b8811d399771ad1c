package entity

import "time"

// Employee is the staff profile behind a user account.
type Employee struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;uniqueIndex"`
	User   User  `gorm:"constraint:OnDelete:CASCADE"`

	Nombre   string  `gorm:"type:varchar(100);not null"`
	Apellido string  `gorm:"type:varchar(100);not null"`
	Sexo     *string `gorm:"type:varchar(20)"`
	DNI      string  `gorm:"column:dni;type:varchar(8);uniqueIndex;not null"`
	Celular  *string `gorm:"type:varchar(20)"`

	AvatarURL *string  `gorm:"type:text"`
	Estado    bool     `gorm:"default:true;not null"`
	RoleType  RoleType `gorm:"type:varchar(20);default:'mesero'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
