package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregation.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetReportTotals aggregates headline numbers over [from, to). Revenue and
// profit come from sales as stored; expenses come from the expenses table.
func (r *PgxReportingRepository) GetReportTotals(ctx context.Context, from, to time.Time) (*domain.ReportTotals, error) {
	var totals domain.ReportTotals
	err := r.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(profit), 0)
		FROM sales
		WHERE sale_date >= $1 AND sale_date < $2;`,
		from, to,
	).Scan(&totals.SalesCount, &totals.TotalRevenue, &totals.TotalProfit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate sales totals", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE expense_date >= $1 AND expense_date < $2;`,
		from, to,
	).Scan(&totals.TotalExpenses)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate expense totals", err)
	}

	totals.NetProfit = totals.TotalProfit.Sub(totals.TotalExpenses)
	if totals.TotalRevenue.IsPositive() {
		totals.ProfitMargin = totals.TotalProfit.Div(totals.TotalRevenue)
	} else {
		totals.ProfitMargin = decimal.Zero
	}
	return &totals, nil
}

// GetTopProducts ranks products by revenue over [from, to). Each line item
// carries a profit share proportional to its subtotal within the owning sale.
func (r *PgxReportingRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSalesRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			si.product_id,
			COALESCE(p.name, ''),
			COALESCE(SUM(si.quantity), 0),
			COALESCE(SUM(si.subtotal), 0),
			COALESCE(SUM(si.subtotal * s.profit / NULLIF(s.subtotal, 0)), 0)
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		LEFT JOIN products p ON p.product_id = si.product_id
		WHERE s.sale_date >= $1 AND s.sale_date < $2
		GROUP BY si.product_id, p.name
		ORDER BY SUM(si.subtotal) DESC
		LIMIT $3;`,
		from, to, limit,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to rank products", err)
	}
	defer rows.Close()

	result := []domain.ProductSalesRow{}
	for rows.Next() {
		var row domain.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.Revenue, &row.Profit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product ranking row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product ranking rows", err)
	}
	return result, nil
}

// GetTopCustomers ranks customers by revenue over [from, to).
func (r *PgxReportingRepository) GetTopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domain.CustomerSalesRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			s.customer_id,
			COALESCE(c.name, ''),
			COUNT(*),
			COALESCE(SUM(s.total_amount), 0),
			COALESCE(SUM(s.profit), 0)
		FROM sales s
		LEFT JOIN customers c ON c.customer_id = s.customer_id
		WHERE s.sale_date >= $1 AND s.sale_date < $2
		GROUP BY s.customer_id, c.name
		ORDER BY SUM(s.total_amount) DESC
		LIMIT $3;`,
		from, to, limit,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to rank customers", err)
	}
	defer rows.Close()

	result := []domain.CustomerSalesRow{}
	for rows.Next() {
		var row domain.CustomerSalesRow
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.SalesCount, &row.Revenue, &row.Profit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer ranking row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer ranking rows", err)
	}
	return result, nil
}

// GetDailyTrend buckets sales per day over [from, to). Days with no sales are
// absent from the result; the client fills gaps.
func (r *PgxReportingRepository) GetDailyTrend(ctx context.Context, from, to time.Time) ([]domain.DailyTrendRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			date_trunc('day', sale_date) AS day,
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(profit), 0)
		FROM sales
		WHERE sale_date >= $1 AND sale_date < $2
		GROUP BY day
		ORDER BY day;`,
		from, to,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to bucket daily sales", err)
	}
	defer rows.Close()

	result := []domain.DailyTrendRow{}
	for rows.Next() {
		var row domain.DailyTrendRow
		if err := rows.Scan(&row.Day, &row.SalesCount, &row.Revenue, &row.Profit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan daily trend row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating daily trend rows", err)
	}
	return result, nil
}

// GetDashboardSummary computes the landing-page snapshot relative to now.
// Receivables sum unpaid sale remainders; payables sum unpaid purchase and
// transport remainders.
func (r *PgxReportingRepository) GetDashboardSummary(ctx context.Context, now time.Time, lowStockThreshold int64) (*domain.DashboardSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var summary domain.DashboardSummary
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales
		WHERE sale_date >= $1;`,
		dayStart,
	).Scan(&summary.TodayRevenue, &summary.TodaySalesCount)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate today's sales", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(profit), 0)
		FROM sales
		WHERE sale_date >= $1;`,
		monthStart,
	).Scan(&summary.MonthRevenue, &summary.MonthProfit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate month sales", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE quantity <= $1;`,
		lowStockThreshold,
	).Scan(&summary.LowStockCount)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count low stock products", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(remaining_amount), 0) FROM sales WHERE remaining_amount > 0;`,
	).Scan(&summary.ReceivablesDue)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum receivables", err)
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(remaining_amount + transport_remaining), 0)
		FROM purchases
		WHERE remaining_amount > 0 OR transport_remaining > 0;`,
	).Scan(&summary.PayablesDue)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum payables", err)
	}

	return &summary, nil
}
