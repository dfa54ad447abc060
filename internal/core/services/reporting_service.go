package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/middleware"
)

const defaultTopN = 10

// reportingService aggregates sales, purchases, and expenses into read-only
// reports. All numbers are derived in SQL; nothing here mutates state.
type reportingService struct {
	reportingRepo     portsrepo.ReportingRepository
	lowStockThreshold int64
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, lowStockThreshold int64) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:     reportingRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetReport builds the combined [from, to) report. The upper bound is
// exclusive, so a whole-day range passes the day after the last wanted day.
func (s *reportingService) GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", apperrors.ErrValidation)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopN
	}

	totals, err := s.reportingRepo.GetReportTotals(ctx, req.From, req.To)
	if err != nil {
		logger.Error("Failed to aggregate report totals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	topProducts, err := s.reportingRepo.GetTopProducts(ctx, req.From, req.To, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}

	topCustomers, err := s.reportingRepo.GetTopCustomers(ctx, req.From, req.To, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top customers: %w", err)
	}

	trend, err := s.reportingRepo.GetDailyTrend(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily trend: %w", err)
	}

	return &dto.ReportResponse{
		From:         req.From,
		To:           req.To,
		Totals:       *totals,
		TopProducts:  topProducts,
		TopCustomers: topCustomers,
		DailyTrend:   trend,
	}, nil
}

// GetDashboard computes the landing-page snapshot.
func (s *reportingService) GetDashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	summary, err := s.reportingRepo.GetDashboardSummary(ctx, time.Now().UTC(), s.lowStockThreshold)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to compute dashboard summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}
	return summary, nil
}
