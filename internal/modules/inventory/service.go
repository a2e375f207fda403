package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// Service defines stock ledger business logic.
type Service interface {
	// CreateRecord starts tracking a product's stock.
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error)

	// GetStock returns the current stock count for a product. NotFound means
	// the product is not tracked, which is not the same as zero stock.
	GetStock(ctx context.Context, productID string) (*Record, error)

	// List returns all tracked products, optionally filtered by category.
	List(ctx context.Context, category string) ([]*Record, error)

	// ListLowStock returns records at or below their threshold.
	ListLowStock(ctx context.Context) ([]*Record, error)

	// Adjust applies a signed stock delta (admin correction).
	Adjust(ctx context.Context, productID string, delta int) error

	// Restock sets an absolute stock level.
	Restock(ctx context.Context, id string, newStock int) (*Record, error)

	// DeleteRecord stops tracking a product.
	DeleteRecord(ctx context.Context, id string) error

	// Stats summarizes stock position for dashboards.
	Stats(ctx context.Context) (*Stats, error)
}

// CreateRecordRequest holds data for tracking a new product.
type CreateRecordRequest struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"minStock"`
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Validationf("invalid product id %q", req.ProductID)
	}
	if req.Stock < 0 {
		return nil, apperr.Validationf("initial stock cannot be negative")
	}
	minStock := req.MinStock
	if minStock <= 0 {
		minStock = 5
	}
	rec := &Record{
		ID:                uuid.New(),
		ProductID:         pid,
		StockQuantity:     req.Stock,
		LowStockThreshold: minStock,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) GetStock(ctx context.Context, productID string) (*Record, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperr.Validationf("invalid product id %q", productID)
	}
	return s.repo.GetByProductID(ctx, pid)
}

func (s *service) List(ctx context.Context, category string) ([]*Record, error) {
	return s.repo.List(ctx, category)
}

func (s *service) ListLowStock(ctx context.Context) ([]*Record, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) Adjust(ctx context.Context, productID string, delta int) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return apperr.Validationf("invalid product id %q", productID)
	}
	// A missing record is a no-op by design; the repo logs it.
	_, err = s.repo.AdjustStock(ctx, pid, delta)
	return err
}

func (s *service) Restock(ctx context.Context, id string, newStock int) (*Record, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid inventory id %q", id)
	}
	if newStock < 0 {
		return nil, apperr.Validationf("restock level cannot be negative")
	}
	return s.repo.Restock(ctx, rid, newStock)
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validationf("invalid inventory id %q", id)
	}
	return s.repo.DeleteRecord(ctx, rid)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
