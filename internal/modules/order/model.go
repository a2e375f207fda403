package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settled the bill at the counter.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentUPI   PaymentMethod = "upi"
	PaymentOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOther:
		return true
	}
	return false
}

// Order statuses. The counter flow completes orders immediately; cancelled
// exists only so analytics can exclude voided rows.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Order is a completed sale: a header plus its line items. CustomerID is nil
// for walk-ins with no resolvable identity.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	StaffID       *uuid.UUID      `json:"staff_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	Items         []*Item         `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	// Denormalized display fields for list views.
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	StaffName     string `json:"staff_name,omitempty"`
	ItemsSummary  string `json:"items_summary,omitempty"`
}

// Item is one line of an order. UnitPrice is frozen at time of sale and does
// not follow later catalog price changes.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// CartItem is a line of the submitted cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CustomerInfo identifies the buyer: either an existing id or a phone number
// to resolve. Omitting the whole block marks the order as a walk-in.
type CustomerInfo struct {
	ID          string `json:"id,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CreateOrderRequest is the payload for creating or replacing an order.
type CreateOrderRequest struct {
	Customer      *CustomerInfo `json:"customer,omitempty"`
	Items         []CartItem    `json:"items"`
	PaymentMethod string        `json:"paymentMethod"`
	TotalAmount   float64       `json:"totalAmount"`
	StaffID       string        `json:"staffId,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// ListFilter narrows order listings.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
	Limit  int
}
