package repository

import (
	"context"
	"time"

	"luwakpos/internal/entity"

	"gorm.io/gorm"
)

type DailySales struct {
	Day   time.Time
	Total float64
}

type ProductSales struct {
	ProductID int64
	Nombre    string
	Ventas    int64
}

// OrderRepository feeds the sales dashboard. Order creation and status
// changes happen at the POS terminals and are outside this service.
type OrderRepository interface {
	PaidTotals(ctx context.Context, since time.Time) (total float64, count int64, err error)
	PaidByDay(ctx context.Context, since time.Time, days int) ([]DailySales, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) PaidTotals(ctx context.Context, since time.Time) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("estado = ? AND created_at >= ?", entity.OrderPagado, since).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *orderRepository) PaidByDay(ctx context.Context, since time.Time, days int) ([]DailySales, error) {
	var rows []DailySales
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Select("DATE_TRUNC('day', created_at) AS day, SUM(total) AS total").
		Where("estado = ? AND created_at >= ?", entity.OrderPagado, since).
		Group("DATE_TRUNC('day', created_at)").
		Order("day DESC").
		Limit(days).
		Scan(&rows).Error
	return rows, err
}

func (r *orderRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.WithContext(ctx).
		Model(&entity.OrderItem{}).
		Select("order_items.product_id AS product_id, products.nombre AS nombre, SUM(order_items.cantidad) AS ventas").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.estado = ? AND orders.created_at >= ?", entity.OrderPagado, since).
		Group("order_items.product_id, products.nombre").
		Order("ventas DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
