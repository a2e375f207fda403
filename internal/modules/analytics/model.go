package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate payload behind the dashboard screen.
// Cancelled orders are excluded from every figure.
type DashboardStats struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	OrderCount        int             `json:"orderCount"`
	AvgOrderValue     decimal.Decimal `json:"avgOrderValue"`
	LowStockItems     int             `json:"lowStockItems"`
	TopSellingProduct string          `json:"topSellingProduct"`
	HourlyData        []HourlyBucket  `json:"hourlyData"`
}

// HourlyBucket is one bar of the peak-hours chart.
type HourlyBucket struct {
	Hour   string          `json:"hour"`
	Orders int             `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

// DailyOrderRow is one line of the daily export sheet.
type DailyOrderRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Status        string
}
