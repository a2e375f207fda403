package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the customer directory.
type Repository interface {
	// FindByPhone looks up a customer by exact phone number.
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// Insert creates a new customer. Returns a conflict error when another
	// insert won the phone-number uniqueness race.
	Insert(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer with read-time aggregates.
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// List returns customers with aggregates, filtered by a name/phone search.
	List(ctx context.Context, query string) ([]*Customer, error)
}
