package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

// Service orchestrates the order workflow: it validates the cart, resolves
// the customer through the directory, and hands the assembled order to the
// repository, which persists header, items, and stock deltas as one unit.
type Service interface {
	// Create records a new completed sale. Not idempotent: resubmitting the
	// same cart produces a second order and a second stock decrement, so
	// callers must not blindly retry on timeout.
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// Update replaces an order's header and items; inventory is adjusted by
	// the net difference against what is currently stored.
	Update(ctx context.Context, id string, req CreateOrderRequest) (*Order, error)

	// Delete removes an order and restores the stock it consumed.
	Delete(ctx context.Context, id string) error

	// Get retrieves a full order.
	Get(ctx context.Context, id string) (*Order, error)

	// List returns recent orders with display names and item summaries.
	List(ctx context.Context, f ListFilter) ([]*Order, error)
}

type service struct {
	repo      Repository
	customers CustomerDirectory
	logger    *slog.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, customers CustomerDirectory, logger *slog.Logger) Service {
	return &service{repo: repo, customers: customers, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	o, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	o.ID = uuid.New()
	o.OrderNumber = generateOrderNumber()
	for _, item := range o.Items {
		item.OrderID = o.ID
	}
	if err := s.repo.PlaceOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, id string, req CreateOrderRequest) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid order id %q", id)
	}
	o, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	o.ID = oid
	for _, item := range o.Items {
		item.OrderID = oid
	}
	if err := s.repo.ReviseOrder(ctx, o); err != nil {
		return nil, err
	}
	return s.repo.GetOrderByID(ctx, oid)
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validationf("invalid order id %q", id)
	}
	return s.repo.RemoveOrder(ctx, oid)
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid order id %q", id)
	}
	return s.repo.GetOrderByID(ctx, oid)
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, f)
}

// buildOrder validates the request and assembles an Order ready to persist.
// No storage writes happen here except idempotent customer resolution.
func (s *service) buildOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := validateCart(req); err != nil {
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	var staffID *uuid.UUID
	if req.StaffID != "" {
		sid, err := uuid.Parse(req.StaffID)
		if err != nil {
			return nil, apperr.Validationf("invalid staff id %q", req.StaffID)
		}
		staffID = &sid
	}

	items := make([]*Item, 0, len(req.Items))
	for _, ci := range req.Items {
		pid, err := uuid.Parse(ci.ProductID)
		if err != nil {
			return nil, apperr.Validationf("invalid product id %q", ci.ProductID)
		}
		unitPrice := decimal.NewFromFloat(ci.UnitPrice)
		items = append(items, &Item{
			ID:         uuid.New(),
			ProductID:  pid,
			Quantity:   ci.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity))),
		})
	}

	method := PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = PaymentCash
	}

	// The client-computed total is trusted as-is (explicit policy carried
	// over from the original system), but a mismatch against the line items
	// is worth a trace in the logs.
	total := decimal.NewFromFloat(req.TotalAmount)
	if computed := itemsTotal(items); !computed.Equal(total) {
		s.logger.Warn("client total differs from item sum",
			"client_total", total.String(), "item_sum", computed.String())
	}

	return &Order{
		CustomerID:    customerID,
		StaffID:       staffID,
		TotalAmount:   total,
		PaymentMethod: method,
		Status:        StatusCompleted,
		Notes:         req.Notes,
		Items:         items,
	}, nil
}

func (s *service) resolveCustomer(ctx context.Context, info *CustomerInfo) (*uuid.UUID, error) {
	if info == nil {
		// Walk-in: no customer attached.
		return nil, nil
	}
	if info.ID != "" {
		cid, err := uuid.Parse(info.ID)
		if err != nil {
			return nil, apperr.Validationf("invalid customer id %q", info.ID)
		}
		return &cid, nil
	}
	if info.PhoneNumber == "" {
		return nil, apperr.Validationf("customer phone number is required")
	}
	cid, err := s.customers.Resolve(ctx, info.PhoneNumber, info.FullName, info.Notes)
	if err != nil {
		return nil, err
	}
	return &cid, nil
}

func validateCart(req CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return apperr.Validationf("order must contain at least one item")
	}
	for _, ci := range req.Items {
		if ci.Quantity <= 0 {
			return apperr.Validationf("quantity must be > 0 for product %s", ci.ProductID)
		}
		if ci.UnitPrice < 0 {
			return apperr.Validationf("unit price cannot be negative for product %s", ci.ProductID)
		}
	}
	if req.PaymentMethod != "" && !PaymentMethod(req.PaymentMethod).Valid() {
		return apperr.Validationf("unknown payment method %q", req.PaymentMethod)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// stockDeltas computes the net stock adjustment per product when old items
// are replaced by new ones. Positive delta restores stock, negative consumes
// it; a product present in both sets contributes oldQty − newQty.
func stockDeltas(old, new []*Item) map[uuid.UUID]int {
	deltas := make(map[uuid.UUID]int)
	for _, item := range old {
		deltas[item.ProductID] += item.Quantity
	}
	for _, item := range new {
		deltas[item.ProductID] -= item.Quantity
	}
	return deltas
}

func itemsTotal(items []*Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// summarize renders "2x Chocolate Cake, 1x Croissant" for list views.
func summarize(items []*Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if name == "" {
			name = "Unknown"
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, name))
	}
	return strings.Join(parts, ", ")
}

// generateOrderNumber creates a human-readable order number: BB-YYYYMMDD-XXXX.
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("BB-%s-%s", date, suffix)
}
