package entity

import "time"

// OrderStatus is the kitchen lifecycle of a ticket. Orders only feed the
// sales dashboard here; the ordering flow itself lives with the POS client.
type OrderStatus string

const (
	OrderPendiente OrderStatus = "pendiente"
	OrderCocinando OrderStatus = "cocinando"
	OrderListo     OrderStatus = "listo"
	OrderPagado    OrderStatus = "pagado"
)

type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"not null;index"`

	NumeroPedido       int64       `gorm:"not null"`
	DescripcionResumen *string     `gorm:"type:text"`
	Total              float64     `gorm:"type:numeric(10,2);not null"`
	Estado             OrderStatus `gorm:"type:varchar(20);default:'pendiente';not null;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"not null;index"`
	ProductID int64 `gorm:"not null;index"`

	Cantidad       int     `gorm:"not null"`
	PrecioUnitario float64 `gorm:"type:numeric(10,2);not null"`
	Subtotal       float64 `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Nombre string `gorm:"type:varchar(150);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
