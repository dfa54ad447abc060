package services

import (
	"context"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/dto"
)

// ReportingSvcFacade exposes the read-only aggregations over the ledger data.
type ReportingSvcFacade interface {
	GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error)
	GetDashboard(ctx context.Context) (*domain.DashboardSummary, error)
}
