package dto

import (
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
)

// ReportRequest bounds a report to [from, to). Limit caps the top-N lists.
type ReportRequest struct {
	From  time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To    time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	Limit int       `form:"limit"`
}

// ReportResponse is the combined date-range report.
type ReportResponse struct {
	From         time.Time                 `json:"from"`
	To           time.Time                 `json:"to"`
	Totals       domain.ReportTotals       `json:"totals"`
	TopProducts  []domain.ProductSalesRow  `json:"topProducts"`
	TopCustomers []domain.CustomerSalesRow `json:"topCustomers"`
	DailyTrend   []domain.DailyTrendRow    `json:"dailyTrend"`
}
