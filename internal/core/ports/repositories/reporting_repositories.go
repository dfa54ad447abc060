package repositories

import (
	"context"
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries backing the
// reports and dashboard. Everything is derived from sales, purchases, and
// expenses; no independent state.
type ReportingRepository interface {
	// GetReportTotals aggregates headline numbers over [from, to).
	GetReportTotals(ctx context.Context, from, to time.Time) (*domain.ReportTotals, error)

	// GetTopProducts ranks products by revenue over [from, to), with profit
	// apportioned per line item proportionally to each sale's profit/subtotal
	// ratio.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSalesRow, error)

	// GetTopCustomers ranks customers by revenue over [from, to).
	GetTopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domain.CustomerSalesRow, error)

	// GetDailyTrend buckets sales per day over [from, to).
	GetDailyTrend(ctx context.Context, from, to time.Time) ([]domain.DailyTrendRow, error)

	// GetDashboardSummary computes the landing-page snapshot relative to now.
	GetDashboardSummary(ctx context.Context, now time.Time, lowStockThreshold int64) (*domain.DashboardSummary, error)
}
