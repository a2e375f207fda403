package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRequest holds data for creating or updating a product.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       decimal.NewFromFloat(req.Price),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid product id %q", id)
	}
	return s.repo.GetProductByID(ctx, pid)
}

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListProducts(ctx, category)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid product id %q", id)
	}
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProductByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Description = req.Description
	p.SKU = req.SKU
	p.Price = decimal.NewFromFloat(req.Price)
	p.Category = req.Category
	p.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validationf("invalid product id %q", id)
	}
	return s.repo.DeleteProduct(ctx, pid)
}

func validateProduct(req ProductRequest) error {
	if req.Name == "" {
		return apperr.Validationf("product name is required")
	}
	if req.Category == "" {
		return apperr.Validationf("product category is required")
	}
	if req.Price < 0 {
		return apperr.Validationf("product price cannot be negative")
	}
	return nil
}
