package staff

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for staff accounts.
type Repository interface {
	// CreateUser persists a new staff member. Conflict when the phone number
	// is already registered.
	CreateUser(ctx context.Context, u *AppUser) error

	// GetUserByID retrieves a staff member by id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*AppUser, error)

	// GetUserByPhone retrieves a staff member by phone number.
	GetUserByPhone(ctx context.Context, phone string) (*AppUser, error)

	// ListUsers returns all staff, newest first.
	ListUsers(ctx context.Context) ([]*AppUser, error)

	// UpdateUser replaces the mutable fields of a staff member.
	UpdateUser(ctx context.Context, u *AppUser) error

	// DeleteUser removes a staff account.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
