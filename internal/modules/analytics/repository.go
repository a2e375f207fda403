package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines read-only aggregate queries over orders and inventory.
type Repository interface {
	// SalesSummary returns the non-cancelled sales total and order count
	// within [from, to).
	SalesSummary(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error)
	// LowStockCount returns how many tracked products are at or below
	// their low-stock threshold.
	LowStockCount(ctx context.Context) (int, error)
	// TopProduct returns the name of the best-selling product by quantity
	// within [from, to), or "" when nothing sold.
	TopProduct(ctx context.Context, from, to time.Time) (string, error)
	// HourlyBreakdown returns order counts and sales keyed by hour of day
	// within [from, to).
	HourlyBreakdown(ctx context.Context, from, to time.Time) (map[int]HourlyBucket, error)
	// OrdersForDay returns every order placed within [from, to), oldest first.
	OrdersForDay(ctx context.Context, from, to time.Time) ([]DailyOrderRow, error)
}
