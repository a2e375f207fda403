package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

const uniqueViolation = "23505"

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	c := &Customer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, COALESCE(phone_number,''), COALESCE(email,''), COALESCE(notes,''),
		       created_at, updated_at
		FROM customers WHERE phone_number=$1`, phone).
		Scan(&c.ID, &c.FullName, &c.PhoneNumber, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("no customer with phone %s", phone)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "find customer by phone")
	}
	return c, nil
}

func (r *postgresRepo) Insert(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, full_name, phone_number, email, notes)
		VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''))`,
		c.ID, c.FullName, c.PhoneNumber, c.Email, c.Notes)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperr.Conflictf("customer with phone %s already exists", c.PhoneNumber)
	}
	if err != nil {
		return apperr.Dependency(err, "insert customer")
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	customers, err := r.queryWithAggregates(ctx, `WHERE c.id=$1`, id)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperr.NotFoundf("customer %s not found", id)
	}
	return customers[0], nil
}

func (r *postgresRepo) List(ctx context.Context, query string) ([]*Customer, error) {
	if query == "" {
		return r.queryWithAggregates(ctx, "")
	}
	return r.queryWithAggregates(ctx,
		`WHERE c.full_name ILIKE '%'||$1||'%' OR c.phone_number ILIKE '%'||$1||'%'`, query)
}

// queryWithAggregates folds order counts and spend into each customer row.
// Aggregates are computed here rather than maintained on write so deleted
// and edited orders never leave the counters stale.
func (r *postgresRepo) queryWithAggregates(ctx context.Context, where string, args ...interface{}) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.full_name, COALESCE(c.phone_number,''), COALESCE(c.email,''),
		       COALESCE(c.notes,''), c.created_at, c.updated_at,
		       COUNT(o.id), COALESCE(SUM(o.total_amount), 0), MAX(o.created_at)
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id AND o.status <> 'cancelled'
		`+where+`
		GROUP BY c.id
		ORDER BY MAX(o.created_at) DESC NULLS LAST, c.updated_at DESC`, args...)
	if err != nil {
		return nil, apperr.Dependency(err, "list customers")
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		var lastOrder sql.NullTime
		if err := rows.Scan(&c.ID, &c.FullName, &c.PhoneNumber, &c.Email, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt, &c.TotalOrders, &c.TotalSpent, &lastOrder); err != nil {
			return nil, apperr.Dependency(err, "scan customer")
		}
		if lastOrder.Valid {
			t := lastOrder.Time
			c.LastOrderAt = &t
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
