package entity

import "time"

// Shift (turno) tracks when an employee is on the clock. A user may hold at
// most one open shift at a time; Fin is nil while the shift is open.
type Shift struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;index"`
	User   User  `gorm:"constraint:OnDelete:CASCADE"`

	Inicio time.Time `gorm:"not null"`
	Fin    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
