package order

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

type postgresRepo struct {
	db    *sql.DB
	stock StockLedger
}

func NewPostgresRepository(db *sql.DB, stock StockLedger) Repository {
	return &postgresRepo{db: db, stock: stock}
}

// PlaceOrder inserts the order, its items, and the per-item stock decrements
// inside a single transaction. The deferred rollback makes any mid-sequence
// failure undo the whole unit, so a half-written order is never visible.
func (r *postgresRepo) PlaceOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Dependency(err, "begin order transaction")
	}
	defer tx.Rollback()

	for _, item := range o.Items {
		if err := r.checkProductExists(ctx, tx, item.ProductID); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_id, staff_id, total_amount, payment_method, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''))`,
		o.ID, o.OrderNumber, o.CustomerID, o.StaffID, o.TotalAmount, o.PaymentMethod, o.Status, o.Notes)
	if err != nil {
		return apperr.Dependency(err, "insert order")
	}

	if err := r.insertItems(ctx, tx, o); err != nil {
		return err
	}

	for _, item := range o.Items {
		if _, err := r.stock.AdjustStockTx(ctx, tx, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Dependency(err, "commit order")
	}
	return nil
}

// ReviseOrder replaces the order wholesale. The net stock effect per product
// is oldQty − newQty, with the old quantities read from storage under the
// same transaction, so an edit is equivalent to delete-then-create for
// inventory purposes.
func (r *postgresRepo) ReviseOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Dependency(err, "begin order transaction")
	}
	defer tx.Rollback()

	oldItems, err := r.lockItems(ctx, tx, o.ID)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		if err := r.checkProductExists(ctx, tx, item.ProductID); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET customer_id=$1, staff_id=$2, total_amount=$3, payment_method=$4, notes=NULLIF($5,'')
		WHERE id=$6`,
		o.CustomerID, o.StaffID, o.TotalAmount, o.PaymentMethod, o.Notes, o.ID)
	if err != nil {
		return apperr.Dependency(err, "update order")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return apperr.Dependency(err, "delete old order items")
	}
	if err := r.insertItems(ctx, tx, o); err != nil {
		return err
	}

	for pid, delta := range stockDeltas(oldItems, o.Items) {
		if delta == 0 {
			continue
		}
		if _, err := r.stock.AdjustStockTx(ctx, tx, pid, delta); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Dependency(err, "commit order revision")
	}
	return nil
}

// RemoveOrder restores stock for each line item, then hard-deletes the order.
// Items go with it via the FK cascade.
func (r *postgresRepo) RemoveOrder(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Dependency(err, "begin order transaction")
	}
	defer tx.Rollback()

	items, err := r.lockItems(ctx, tx, id)
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, err := r.stock.AdjustStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return apperr.Dependency(err, "delete order")
	}

	if err := tx.Commit(); err != nil {
		return apperr.Dependency(err, "commit order removal")
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o := &Order{}
	var customerID, staffID sql.NullString
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, COALESCE(o.order_number,''), o.customer_id, o.staff_id,
		       o.total_amount, o.payment_method, o.status, o.notes, o.created_at,
		       COALESCE(c.full_name,'Unknown'), COALESCE(c.phone_number,''),
		       COALESCE(u.full_name,'System')
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		LEFT JOIN app_users u ON u.id = o.staff_id
		WHERE o.id=$1`, id).
		Scan(&o.ID, &o.OrderNumber, &customerID, &staffID,
			&o.TotalAmount, &o.PaymentMethod, &o.Status, &notes, &o.CreatedAt,
			&o.CustomerName, &o.CustomerPhone, &o.StaffName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("order %s not found", id)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "fetch order")
	}
	o.CustomerID = parseNullUUID(customerID)
	o.StaffID = parseNullUUID(staffID)
	o.Notes = notes.String

	o.Items, err = r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.ItemsSummary = summarize(o.Items)
	return o, nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, f ListFilter) ([]*Order, error) {
	query := `
		SELECT o.id, COALESCE(o.order_number,''), o.customer_id, o.staff_id,
		       o.total_amount, o.payment_method, o.status, o.notes, o.created_at,
		       COALESCE(c.full_name,'Unknown'), COALESCE(c.phone_number,''),
		       COALESCE(u.full_name,'System')
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		LEFT JOIN app_users u ON u.id = o.staff_id
		WHERE 1=1`
	args := []interface{}{}
	if f.From != nil {
		args = append(args, *f.From)
		query += ` AND o.created_at >= $` + strconv.Itoa(len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += ` AND o.created_at <= $` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND o.status = $` + strconv.Itoa(len(args))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += ` ORDER BY o.created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Dependency(err, "list orders")
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var customerID, staffID, notes sql.NullString
		if err := rows.Scan(&o.ID, &o.OrderNumber, &customerID, &staffID,
			&o.TotalAmount, &o.PaymentMethod, &o.Status, &notes, &o.CreatedAt,
			&o.CustomerName, &o.CustomerPhone, &o.StaffName); err != nil {
			return nil, apperr.Dependency(err, "scan order")
		}
		o.CustomerID = parseNullUUID(customerID)
		o.StaffID = parseNullUUID(staffID)
		o.Notes = notes.String
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Dependency(err, "list orders")
	}

	for _, o := range orders {
		o.Items, err = r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.ItemsSummary = summarize(o.Items)
	}
	return orders, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) checkProductExists(ctx context.Context, tx *sql.Tx, productID uuid.UUID) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists)
	if err != nil {
		return apperr.Dependency(err, "check product")
	}
	if !exists {
		return apperr.NotFoundf("product %s not found", productID)
	}
	return nil
}

func (r *postgresRepo) insertItems(ctx context.Context, tx *sql.Tx, o *Order) error {
	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice)
		if err != nil {
			return apperr.Dependency(err, "insert order item")
		}
	}
	return nil
}

// lockItems reads an order's items under FOR UPDATE of the header row, so a
// concurrent edit and delete of the same order serialize instead of both
// adjusting stock from the same snapshot. NotFound when the order is absent.
func (r *postgresRepo) lockItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) ([]*Item, error) {
	var locked uuid.UUID
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("order %s not found", orderID)
	}
	if err != nil {
		return nil, apperr.Dependency(err, "lock order")
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, order_id, COALESCE(product_id, '00000000-0000-0000-0000-000000000000'),
		       quantity, unit_price, total_price
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, apperr.Dependency(err, "load order items")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, apperr.Dependency(err, "scan order item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, COALESCE(i.product_id, '00000000-0000-0000-0000-000000000000'),
		       COALESCE(p.name,'Unknown'), i.quantity, i.unit_price, i.total_price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id=$1`, orderID)
	if err != nil {
		return nil, apperr.Dependency(err, "load order items")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, apperr.Dependency(err, "scan order item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func parseNullUUID(s sql.NullString) *uuid.UUID {
	if !s.Valid {
		return nil
	}
	uid, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &uid
}
