package inventory

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository defines data access for the stock ledger.
type Repository interface {
	// CreateRecord starts tracking stock for a product. Conflict if the
	// product already has a record.
	CreateRecord(ctx context.Context, rec *Record) error

	// GetByProductID returns the record for a product; NotFound means the
	// product is not stock-tracked (distinct from zero stock).
	GetByProductID(ctx context.Context, productID uuid.UUID) (*Record, error)

	// List returns all records with product names joined, optionally filtered
	// by product category.
	List(ctx context.Context, category string) ([]*Record, error)

	// ListLowStock returns records at or below their low-stock threshold.
	ListLowStock(ctx context.Context) ([]*Record, error)

	// AdjustStock applies stock_quantity += delta as a single atomic update.
	// Returns false when the product has no record (caller treats as no-op).
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (bool, error)

	// AdjustStockTx is AdjustStock scoped to a caller-owned transaction, so
	// order workflows can keep stock changes atomic with order writes.
	AdjustStockTx(ctx context.Context, tx *sql.Tx, productID uuid.UUID, delta int) (bool, error)

	// Restock sets the absolute stock level and stamps last_restocked_at.
	Restock(ctx context.Context, id uuid.UUID, newStock int) (*Record, error)

	// DeleteRecord stops tracking stock for a product (explicit admin action).
	DeleteRecord(ctx context.Context, id uuid.UUID) error

	// Stats returns total / low-stock / out-of-stock counts.
	Stats(ctx context.Context) (*Stats, error)
}
