package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the product catalog.
type Repository interface {
	// CreateProduct persists a new menu product.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProductByID retrieves a product with its joined stock count.
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// ListProducts returns available products, optionally filtered by category,
	// with stock joined from inventory.
	ListProducts(ctx context.Context, category string) ([]*Product, error)

	// UpdateProduct replaces the mutable fields of a product.
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes a product; its inventory record cascades.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
