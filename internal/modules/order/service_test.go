package order

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// fakeRepo mimics the transactional repository against in-memory maps. Stock
// adjustments happen under the same lock as the order write, matching the
// all-or-nothing behavior of the real transaction.
type fakeRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*Order
	stock  map[uuid.UUID]int
	placed int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: make(map[uuid.UUID]*Order),
		stock:  make(map[uuid.UUID]int),
	}
}

func (r *fakeRepo) PlaceOrder(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed++
	r.orders[o.ID] = o
	for _, item := range o.Items {
		r.stock[item.ProductID] -= item.Quantity
	}
	return nil
}

func (r *fakeRepo) ReviseOrder(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.orders[o.ID]
	if !ok {
		return apperr.NotFoundf("order %s not found", o.ID)
	}
	for pid, delta := range stockDeltas(old.Items, o.Items) {
		r.stock[pid] += delta
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepo) RemoveOrder(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return apperr.NotFoundf("order %s not found", id)
	}
	for _, item := range o.Items {
		r.stock[item.ProductID] += item.Quantity
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFoundf("order %s not found", id)
	}
	return o, nil
}

func (r *fakeRepo) ListOrders(_ context.Context, _ ListFilter) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

type fakeDirectory struct {
	mu      sync.Mutex
	byPhone map[string]uuid.UUID
	calls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{byPhone: make(map[string]uuid.UUID)}
}

func (d *fakeDirectory) Resolve(_ context.Context, phone, _, _ string) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if id, ok := d.byPhone[phone]; ok {
		return id, nil
	}
	id := uuid.New()
	d.byPhone[phone] = id
	return id, nil
}

func newTestService(repo *fakeRepo, dir *fakeDirectory) Service {
	return NewService(repo, dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	svc := newTestService(repo, dir)

	cake := uuid.New()
	repo.stock[cake] = 10

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer: &CustomerInfo{PhoneNumber: "9876543210", FullName: "Priya"},
		Items: []CartItem{
			{ProductID: cake.String(), Quantity: 2, UnitPrice: 500},
		},
		PaymentMethod: "upi",
		TotalAmount:   1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, repo.stock[cake])
	assert.Equal(t, StatusCompleted, o.Status)
	assert.Equal(t, PaymentUPI, o.PaymentMethod)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, o.CustomerID)
	assert.Equal(t, dir.byPhone["9876543210"], *o.CustomerID)
	assert.Regexp(t, `^BB-\d{8}-[0-9A-F]{4}$`, o.OrderNumber)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].TotalPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, o.ID, o.Items[0].OrderID)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	svc := newTestService(repo, dir)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer:    &CustomerInfo{PhoneNumber: "9876543210"},
		TotalAmount: 0,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	// Rejected before any side effects.
	assert.Equal(t, 0, repo.placed)
	assert.Equal(t, 0, dir.calls)
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"zero quantity", CreateOrderRequest{
			Items: []CartItem{{ProductID: uuid.NewString(), Quantity: 0, UnitPrice: 50}},
		}},
		{"negative quantity", CreateOrderRequest{
			Items: []CartItem{{ProductID: uuid.NewString(), Quantity: -1, UnitPrice: 50}},
		}},
		{"negative price", CreateOrderRequest{
			Items: []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: -5}},
		}},
		{"unknown payment method", CreateOrderRequest{
			Items:         []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 50}},
			PaymentMethod: "barter",
		}},
		{"bad product id", CreateOrderRequest{
			Items: []CartItem{{ProductID: "not-a-uuid", Quantity: 1, UnitPrice: 50}},
		}},
		{"customer block without id or phone", CreateOrderRequest{
			Customer: &CustomerInfo{FullName: "Anon"},
			Items:    []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 50}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, newFakeDirectory())
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, 0, repo.placed)
		})
	}
}

func TestCreateOrderWalkIn(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	svc := newTestService(repo, dir)

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Items:       []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 80}},
		TotalAmount: 80,
	})
	require.NoError(t, err)
	assert.Nil(t, o.CustomerID)
	assert.Equal(t, 0, dir.calls)
	// Omitted payment method defaults to cash.
	assert.Equal(t, PaymentCash, o.PaymentMethod)
}

func TestCreateOrderExistingCustomerID(t *testing.T) {
	repo := newFakeRepo()
	dir := newFakeDirectory()
	svc := newTestService(repo, dir)

	cid := uuid.New()
	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Customer:    &CustomerInfo{ID: cid.String()},
		Items:       []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 120}},
		TotalAmount: 120,
	})
	require.NoError(t, err)
	require.NotNil(t, o.CustomerID)
	assert.Equal(t, cid, *o.CustomerID)
	assert.Equal(t, 0, dir.calls)
}

func TestCreateOrderTrustsClientTotal(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory())

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Items:       []CartItem{{ProductID: uuid.NewString(), Quantity: 2, UnitPrice: 500}},
		TotalAmount: 950, // discounted at the counter
	})
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(950)))
}

func TestUpdateOrderAppliesNetDelta(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory())

	cake := uuid.New()
	croissant := uuid.New()
	repo.stock[cake] = 10
	repo.stock[croissant] = 10

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Items: []CartItem{
			{ProductID: cake.String(), Quantity: 2, UnitPrice: 500},
			{ProductID: croissant.String(), Quantity: 1, UnitPrice: 80},
		},
		TotalAmount: 1080,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, repo.stock[cake])
	assert.Equal(t, 9, repo.stock[croissant])

	_, err = svc.Update(context.Background(), o.ID.String(), CreateOrderRequest{
		Items: []CartItem{
			{ProductID: cake.String(), Quantity: 3, UnitPrice: 500},
		},
		TotalAmount: 1500,
	})
	require.NoError(t, err)

	// One more cake consumed, croissant fully restored.
	assert.Equal(t, 7, repo.stock[cake])
	assert.Equal(t, 10, repo.stock[croissant])
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeDirectory())

	_, err := svc.Update(context.Background(), uuid.NewString(), CreateOrderRequest{
		Items:       []CartItem{{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: 10}},
		TotalAmount: 10,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory())

	cake := uuid.New()
	repo.stock[cake] = 5

	o, err := svc.Create(context.Background(), CreateOrderRequest{
		Items:       []CartItem{{ProductID: cake.String(), Quantity: 3, UnitPrice: 500}},
		TotalAmount: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.stock[cake])

	require.NoError(t, svc.Delete(context.Background(), o.ID.String()))
	assert.Equal(t, 5, repo.stock[cake])

	_, err = svc.Get(context.Background(), o.ID.String())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConcurrentCreates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, newFakeDirectory())

	cake := uuid.New()
	repo.stock[cake] = 100

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), CreateOrderRequest{
				Items:       []CartItem{{ProductID: cake.String(), Quantity: 2, UnitPrice: 500}},
				TotalAmount: 1000,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100-workers*2, repo.stock[cake])
	assert.Equal(t, workers, repo.placed)
}

func TestStockDeltas(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	old := []*Item{{ProductID: a, Quantity: 2}, {ProductID: b, Quantity: 1}}
	updated := []*Item{{ProductID: a, Quantity: 3}, {ProductID: c, Quantity: 2}}

	deltas := stockDeltas(old, updated)

	assert.Equal(t, -1, deltas[a])
	assert.Equal(t, 1, deltas[b])
	assert.Equal(t, -2, deltas[c])
}

func TestItemsTotal(t *testing.T) {
	items := []*Item{
		{TotalPrice: decimal.NewFromInt(1000)},
		{TotalPrice: decimal.NewFromFloat(80.50)},
	}
	assert.True(t, itemsTotal(items).Equal(decimal.NewFromFloat(1080.50)))
	assert.True(t, itemsTotal(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	items := []*Item{
		{Quantity: 2, ProductName: "Chocolate Cake"},
		{Quantity: 1, ProductName: "Croissant"},
		{Quantity: 1},
	}
	assert.Equal(t, "2x Chocolate Cake, 1x Croissant, 1x Unknown", summarize(items))
}
