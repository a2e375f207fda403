package order

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository defines data access for order aggregates. The three write
// operations are full units of work: header, items, and stock adjustments
// commit together or not at all.
type Repository interface {
	// PlaceOrder persists a new order and decrements stock per line item in
	// one transaction. Fails without side effects when a product id is unknown.
	PlaceOrder(ctx context.Context, o *Order) error

	// ReviseOrder replaces the header and items of an existing order and
	// applies the net stock delta per product, computed against the stored
	// old items (never a client snapshot).
	ReviseOrder(ctx context.Context, o *Order) error

	// RemoveOrder restores stock for every line item and deletes the order.
	RemoveOrder(ctx context.Context, id uuid.UUID) error

	// GetOrderByID retrieves an order with items and display names joined.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrders returns recent orders, newest first.
	ListOrders(ctx context.Context, f ListFilter) ([]*Order, error)
}

// StockLedger is the slice of the inventory module the order workflow needs:
// an atomic, transaction-scoped stock delta. The bool result reports whether
// the product is tracked at all.
type StockLedger interface {
	AdjustStockTx(ctx context.Context, tx *sql.Tx, productID uuid.UUID, delta int) (bool, error)
}

// CustomerDirectory resolves a phone number to a customer id, creating the
// customer on first contact. Resolution is idempotent, which is why it may
// safely run outside the order transaction.
type CustomerDirectory interface {
	Resolve(ctx context.Context, phone, fullName, notes string) (uuid.UUID, error)
}
