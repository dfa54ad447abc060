package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTotals are the headline numbers for a date range.
type ReportTotals struct {
	SalesCount    int64           `json:"salesCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`    // profit - expenses
	ProfitMargin  decimal.Decimal `json:"profitMargin"` // profit / revenue, zero when revenue is zero
}

// ProductSalesRow is one row of the top-products report. Profit is apportioned
// per line item in proportion to the owning sale's profit/subtotal ratio.
type ProductSalesRow struct {
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	QuantitySold int64           `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// CustomerSalesRow is one row of the top-customers report.
type CustomerSalesRow struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	SalesCount   int64           `json:"salesCount"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// DailyTrendRow is one per-day bucket of the trend report.
type DailyTrendRow struct {
	Day        time.Time       `json:"day"`
	SalesCount int64           `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
}

// DashboardSummary is the landing-page snapshot.
type DashboardSummary struct {
	TodayRevenue    decimal.Decimal `json:"todayRevenue"`
	TodaySalesCount int64           `json:"todaySalesCount"`
	MonthRevenue    decimal.Decimal `json:"monthRevenue"`
	MonthProfit     decimal.Decimal `json:"monthProfit"`
	LowStockCount   int64           `json:"lowStockCount"`
	ReceivablesDue  decimal.Decimal `json:"receivablesDue"` // unpaid sale remainders
	PayablesDue     decimal.Decimal `json:"payablesDue"`    // unpaid purchase + transport remainders
}
