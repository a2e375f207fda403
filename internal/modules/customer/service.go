package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// Service defines customer directory business logic.
type Service interface {
	// Resolve maps a phone number to a customer id, creating the customer on
	// first contact. Existing customers keep their stored name; the directory
	// never overwrites fields on resolution.
	Resolve(ctx context.Context, phone, fullName, notes string) (uuid.UUID, error)

	// GetCustomer retrieves one customer with aggregates.
	GetCustomer(ctx context.Context, id string) (*Customer, error)

	// ListCustomers returns the CRM listing, filtered by a search string.
	ListCustomers(ctx context.Context, query string) ([]*Customer, error)
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, phone, fullName, notes string) (uuid.UUID, error) {
	if phone == "" {
		return uuid.Nil, apperr.Validationf("customer phone number is required")
	}

	existing, err := s.repo.FindByPhone(ctx, phone)
	if err == nil {
		return existing.ID, nil
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		return uuid.Nil, err
	}

	if fullName == "" {
		fullName = "Guest"
	}
	c := &Customer{
		ID:          uuid.New(),
		FullName:    fullName,
		PhoneNumber: phone,
		Notes:       notes,
	}
	err = s.repo.Insert(ctx, c)
	if err == nil {
		return c.ID, nil
	}
	if apperr.KindOf(err) == apperr.KindConflict {
		// Lost the insert race: a concurrent order created this customer
		// between our lookup and insert. The winning row is authoritative.
		winner, ferr := s.repo.FindByPhone(ctx, phone)
		if ferr != nil {
			return uuid.Nil, ferr
		}
		return winner.ID, nil
	}
	return uuid.Nil, err
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validationf("invalid customer id %q", id)
	}
	c, err := s.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	c.LoyaltyPoints = loyaltyPoints(c)
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context, query string) ([]*Customer, error) {
	customers, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		c.LoyaltyPoints = loyaltyPoints(c)
	}
	return customers, nil
}

// loyaltyPoints awards one point per 100 spent.
func loyaltyPoints(c *Customer) int {
	return int(c.TotalSpent.Div(hundred).IntPart())
}
