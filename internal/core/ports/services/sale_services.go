package services

import (
	"context"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/dto"
)

// SaleSvcFacade exposes the customer sales ledger: sale creation, payment
// recording/retraction, returns, and guarded deletion. Every mutator receives
// the acting user's id.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, req dto.ListSalesRequest) ([]domain.Sale, error)
	DeleteSale(ctx context.Context, saleID string, userID string) error

	RecordPayment(ctx context.Context, saleID string, req dto.RecordSalePaymentRequest, userID string) (*domain.Sale, error)
	DeletePayment(ctx context.Context, saleID, paymentID string, userID string) (*domain.Sale, error)

	ProcessReturn(ctx context.Context, saleID string, req dto.CreateReturnRequest, userID string) (*domain.Return, error)
	DeleteReturn(ctx context.Context, returnID string, userID string) (*domain.Sale, error)
}
