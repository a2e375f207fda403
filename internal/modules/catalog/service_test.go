package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

type fakeRepo struct {
	products map[uuid.UUID]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[uuid.UUID]*Product)}
}

func (r *fakeRepo) CreateProduct(_ context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) GetProductByID(_ context.Context, id uuid.UUID) (*Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFoundf("product %s not found", id)
}

func (r *fakeRepo) ListProducts(_ context.Context, category string) ([]*Product, error) {
	var out []*Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateProduct(_ context.Context, p *Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return apperr.NotFoundf("product %s not found", p.ID)
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return apperr.NotFoundf("product %s not found", id)
	}
	delete(r.products, id)
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name:     "Chocolate Cake",
		Price:    500,
		Category: "cakes",
	})
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(500)))
	assert.True(t, p.IsAvailable)
	assert.Contains(t, repo.products, p.ID)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := []struct {
		name string
		req  ProductRequest
	}{
		{"missing name", ProductRequest{Category: "cakes", Price: 100}},
		{"missing category", ProductRequest{Name: "Cake", Price: 100}},
		{"negative price", ProductRequest{Name: "Cake", Category: "cakes", Price: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.CreateProduct(context.Background(), ProductRequest{
		Name: "Croissant", Price: 80, Category: "pastries",
	})
	require.NoError(t, err)

	unavailable := false
	updated, err := svc.UpdateProduct(context.Background(), p.ID.String(), ProductRequest{
		Name: "Butter Croissant", Price: 90, Category: "pastries", IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Butter Croissant", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(90)))
	assert.False(t, updated.IsAvailable)
}

func TestGetProductInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetProduct(context.Background(), "not-a-uuid")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.DeleteProduct(context.Background(), uuid.NewString())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
