package service

import (
	"context"
	"time"

	"luwakpos/internal/repository"
)

type DashboardRange string

const (
	RangeDay   DashboardRange = "day"
	RangeWeek  DashboardRange = "week"
	RangeMonth DashboardRange = "month"
)

type DaySales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type TopProduct struct {
	Nombre string `json:"nombre"`
	Ventas int64  `json:"ventas"`
}

type DashboardSummary struct {
	TotalVentas float64      `json:"totalVentas"`
	OrdersCount int64        `json:"ordersCount"`
	SalesByDay  []DaySales   `json:"salesByDay"`
	TopProducts []TopProduct `json:"topProducts"`
}

type DashboardService struct {
	orders repository.OrderRepository
	clock  Clock
}

func NewDashboardService(orders repository.OrderRepository, clock Clock) *DashboardService {
	return &DashboardService{orders: orders, clock: clock}
}

// Summary aggregates paid orders for the range: sales total, order count,
// per-day buckets (most recent seven) and the five best-selling products.
func (s *DashboardService) Summary(ctx context.Context, rng DashboardRange) (*DashboardSummary, error) {
	now := s.clock.Now()
	var since time.Time
	switch rng {
	case RangeWeek:
		since = now.Add(-7 * 24 * time.Hour)
	case RangeMonth:
		since = now.Add(-30 * 24 * time.Hour)
	default:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	total, count, err := s.orders.PaidTotals(ctx, since)
	if err != nil {
		return nil, err
	}

	daily, err := s.orders.PaidByDay(ctx, since, 7)
	if err != nil {
		return nil, err
	}
	salesByDay := make([]DaySales, 0, len(daily))
	for _, row := range daily {
		salesByDay = append(salesByDay, DaySales{
			Date:  row.Day.Format("2006-01-02"),
			Total: row.Total,
		})
	}

	top, err := s.orders.TopProducts(ctx, since, 5)
	if err != nil {
		return nil, err
	}
	topProducts := make([]TopProduct, 0, len(top))
	for _, row := range top {
		topProducts = append(topProducts, TopProduct{Nombre: row.Nombre, Ventas: row.Ventas})
	}

	return &DashboardSummary{
		TotalVentas: total,
		OrdersCount: count,
		SalesByDay:  salesByDay,
		TopProducts: topProducts,
	}, nil
}
