package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Record tracks stock for a single product. One row per product; products
// without a record are simply not stock-tracked.
type Record struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	LastRestockedAt   time.Time `json:"last_restocked_at"`

	// Joined from products for list views.
	ProductName string `json:"product_name,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Stats summarizes the stock position for dashboards.
type Stats struct {
	TotalItems      int `json:"totalItems"`
	LowStockCount   int `json:"lowStockCount"`
	OutOfStockCount int `json:"outOfStockCount"`
}
