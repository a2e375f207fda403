package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sweetoven/bakepos-backend/internal/apperr"
)

const dateLayout = "2006-01-02"

// Hours shown on the peak-hours chart. The shop opens at 9AM and the
// trailing midnight bucket catches late closes.
const (
	openingHour = 9
	closingHour = 23
)

// Service defines reporting business logic.
type Service interface {
	// DashboardStats aggregates sales figures for a period: "today",
	// "week" or "month". For "today" an explicit date (YYYY-MM-DD) may be
	// given so figures match the client's local calendar day.
	DashboardStats(ctx context.Context, period, date string) (*DashboardStats, error)
	// ExportDaily builds an xlsx workbook of all orders placed on the
	// given date and returns it with a download filename.
	ExportDaily(ctx context.Context, date string) (*excelize.File, string, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new analytics service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger, now: time.Now}
}

func (s *service) DashboardStats(ctx context.Context, period, date string) (*DashboardStats, error) {
	from, to := resolveWindow(period, date, s.now())

	total, count, err := s.repo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}

	lowStock, err := s.repo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.repo.TopProduct(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if top == "" {
		top = "N/A"
	}

	stats := &DashboardStats{
		TotalSales:        total,
		OrderCount:        count,
		AvgOrderValue:     avg,
		LowStockItems:     lowStock,
		TopSellingProduct: top,
		HourlyData:        []HourlyBucket{},
	}

	// The chart only makes sense for a single day.
	if period == "" || period == "today" {
		byHour, err := s.repo.HourlyBreakdown(ctx, from, to)
		if err != nil {
			return nil, err
		}
		stats.HourlyData = buildHourly(byHour)
	}

	return stats, nil
}

func (s *service) ExportDaily(ctx context.Context, date string) (*excelize.File, string, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, "", apperr.Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}
	from := day
	to := day.Add(24 * time.Hour)

	orders, err := s.repo.OrdersForDay(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "Daily Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", apperr.Dependency(err, "build report")
	}
	header := []interface{}{"Order ID", "Time", "Amount", "Payment", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", apperr.Dependency(err, "build report")
	}
	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", apperr.Dependency(err, "build report")
		}
		amount, _ := o.TotalAmount.Float64()
		row := []interface{}{
			o.ID.String(),
			o.CreatedAt.Format("15:04:05"),
			amount,
			o.PaymentMethod,
			o.Status,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", apperr.Dependency(err, "build report")
		}
	}

	s.logger.Info("daily report generated", "date", date, "orders", len(orders))

	filename := fmt.Sprintf("daily_report_%s.xlsx", date)
	return f, filename, nil
}

// resolveWindow maps a period name to a half-open [from, to) interval.
// Unknown periods fall back to today.
func resolveWindow(period, date string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), now
	case "month":
		return now.AddDate(0, 0, -30), now
	}

	day := now
	if date != "" {
		if parsed, err := time.ParseInLocation(dateLayout, date, now.Location()); err == nil {
			day = parsed
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}

// buildHourly lays out chart buckets from opening hour to closing hour,
// plus a midnight bucket, filling gaps with zeroes.
func buildHourly(byHour map[int]HourlyBucket) []HourlyBucket {
	out := make([]HourlyBucket, 0, closingHour-openingHour+2)
	for h := openingHour; h <= closingHour; h++ {
		out = append(out, bucketAt(byHour, h))
	}
	out = append(out, bucketAt(byHour, 0))
	return out
}

func bucketAt(byHour map[int]HourlyBucket, h int) HourlyBucket {
	b := byHour[h]
	b.Hour = hourLabel(h)
	if b.Sales.IsZero() {
		b.Sales = decimal.Zero
	}
	return b
}

func hourLabel(h int) string {
	switch {
	case h == 0:
		return "12AM"
	case h < 12:
		return fmt.Sprintf("%dAM", h)
	case h == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", h-12)
	}
}
