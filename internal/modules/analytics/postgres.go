package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL-backed analytics repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SalesSummary(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2`

	var total decimal.Decimal
	var count int
	if err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, apperr.Dependency(err, "query sales summary")
	}
	return total, count, nil
}

func (r *postgresRepo) LowStockCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM inventory WHERE stock_quantity <= low_stock_threshold`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperr.Dependency(err, "query low stock count")
	}
	return count, nil
}

func (r *postgresRepo) TopProduct(ctx context.Context, from, to time.Time) (string, error) {
	query := `
		SELECT p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> 'cancelled' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT 1`

	var name string
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", apperr.Dependency(err, "query top product")
	}
	return name, nil
}

func (r *postgresRepo) HourlyBreakdown(ctx context.Context, from, to time.Time) (map[int]HourlyBucket, error) {
	query := `
		SELECT EXTRACT(HOUR FROM created_at)::int, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2
		GROUP BY 1`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, apperr.Dependency(err, "query hourly breakdown")
	}
	defer rows.Close()

	buckets := make(map[int]HourlyBucket)
	for rows.Next() {
		var hour int
		var b HourlyBucket
		if err := rows.Scan(&hour, &b.Orders, &b.Sales); err != nil {
			return nil, apperr.Dependency(err, "scan hourly breakdown")
		}
		buckets[hour] = b
	}
	return buckets, rows.Err()
}

func (r *postgresRepo) OrdersForDay(ctx context.Context, from, to time.Time) ([]DailyOrderRow, error) {
	query := `
		SELECT id, created_at, total_amount, payment_method, status
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, apperr.Dependency(err, "query daily orders")
	}
	defer rows.Close()

	var out []DailyOrderRow
	for rows.Next() {
		var row DailyOrderRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.TotalAmount, &row.PaymentMethod, &row.Status); err != nil {
			return nil, apperr.Dependency(err, "scan daily order")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
