package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is addressed by phone number; the UNIQUE constraint on
// phone_number is what keeps two concurrent first orders from creating
// duplicates. Aggregate counters are computed at read time from orders,
// never stored incrementally.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Read-time aggregates over non-cancelled orders.
	TotalOrders   int             `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderAt   *time.Time      `json:"last_order_at,omitempty"`
	LoyaltyPoints int             `json:"loyalty_points"`
}
