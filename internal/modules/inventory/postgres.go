package inventory

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresRepository(db *sql.DB, logger *slog.Logger) Repository {
	return &postgresRepo{db: db, logger: logger}
}

func (r *postgresRepo) CreateRecord(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, product_id, stock_quantity, low_stock_threshold)
		VALUES ($1,$2,$3,$4)`,
		rec.ID, rec.ProductID, rec.StockQuantity, rec.LowStockThreshold)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperr.Conflictf("inventory already exists for product %s", rec.ProductID)
	}
	if err != nil {
		return apperr.Dependency(err, "insert inventory record")
	}
	return nil
}

func (r *postgresRepo) GetByProductID(ctx context.Context, productID uuid.UUID) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowContext(ctx, `
		SELECT i.id, i.product_id, i.stock_quantity, i.low_stock_threshold, i.last_restocked_at,
		       p.name, p.category
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.product_id=$1`, productID).
		Scan(&rec.ID, &rec.ProductID, &rec.StockQuantity, &rec.LowStockThreshold,
			&rec.LastRestockedAt, &rec.ProductName, &rec.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("product %s is not stock-tracked", productID)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "fetch inventory record")
	}
	return rec, nil
}

func (r *postgresRepo) List(ctx context.Context, category string) ([]*Record, error) {
	query := `
		SELECT i.id, i.product_id, i.stock_quantity, i.low_stock_threshold, i.last_restocked_at,
		       p.name, p.category
		FROM inventory i
		JOIN products p ON p.id = i.product_id`
	args := []interface{}{}
	if category != "" && category != "All" {
		query += ` WHERE p.category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY p.name`
	return r.queryRecords(ctx, query, args...)
}

func (r *postgresRepo) ListLowStock(ctx context.Context) ([]*Record, error) {
	return r.queryRecords(ctx, `
		SELECT i.id, i.product_id, i.stock_quantity, i.low_stock_threshold, i.last_restocked_at,
		       p.name, p.category
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.stock_quantity <= i.low_stock_threshold
		ORDER BY i.stock_quantity`)
}

// AdjustStock is the one write the order workflow depends on. The delta is
// applied in a single UPDATE so concurrent orders against the same product
// serialize at the row and never lose an update. Stock may go negative:
// oversell is a front-of-house problem, not a ledger one.
func (r *postgresRepo) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (bool, error) {
	return r.adjust(ctx, r.db, productID, delta)
}

func (r *postgresRepo) AdjustStockTx(ctx context.Context, tx *sql.Tx, productID uuid.UUID, delta int) (bool, error) {
	return r.adjust(ctx, tx, productID, delta)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *postgresRepo) adjust(ctx context.Context, ex execer, productID uuid.UUID, delta int) (bool, error) {
	res, err := ex.ExecContext(ctx,
		`UPDATE inventory SET stock_quantity = stock_quantity + $1 WHERE product_id=$2`,
		delta, productID)
	if err != nil {
		return false, apperr.Dependency(err, "adjust stock")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// Not every product is stock-tracked; skipping is expected.
		r.logger.Info("stock adjustment skipped: product not tracked",
			"product_id", productID.String(), "delta", delta)
		return false, nil
	}
	return true, nil
}

func (r *postgresRepo) Restock(ctx context.Context, id uuid.UUID, newStock int) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE inventory
		SET stock_quantity=$1, last_restocked_at=NOW()
		WHERE id=$2
		RETURNING id, product_id, stock_quantity, low_stock_threshold, last_restocked_at`,
		newStock, id).
		Scan(&rec.ID, &rec.ProductID, &rec.StockQuantity, &rec.LowStockThreshold, &rec.LastRestockedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("inventory record %s not found", id)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "restock")
	}
	return rec, nil
}

func (r *postgresRepo) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id=$1`, id)
	if err != nil {
		return apperr.Dependency(err, "delete inventory record")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.NotFoundf("inventory record %s not found", id)
	}
	return nil
}

func (r *postgresRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock_quantity <= low_stock_threshold),
		       COUNT(*) FILTER (WHERE stock_quantity <= 0)
		FROM inventory`).
		Scan(&st.TotalItems, &st.LowStockCount, &st.OutOfStockCount)
	if err != nil {
		return nil, apperr.Dependency(err, "inventory stats")
	}
	return st, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Dependency(err, "list inventory")
	}
	defer rows.Close()
	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.StockQuantity, &rec.LowStockThreshold,
			&rec.LastRestockedAt, &rec.ProductName, &rec.Category); err != nil {
			return nil, apperr.Dependency(err, "scan inventory record")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
