package services

import (
	"context"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/dto"
)

// PurchaseSvcFacade exposes the supplier purchase ("ograi") ledger, mirroring
// the sale facade with two independent balance pairs per purchase.
type PurchaseSvcFacade interface {
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error)
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, req dto.ListPurchasesRequest) ([]domain.Purchase, error)
	DeletePurchase(ctx context.Context, purchaseID string, userID string) error

	RecordPayment(ctx context.Context, purchaseID string, req dto.RecordPurchasePaymentRequest, userID string) (*domain.Purchase, error)
	ListPayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error)
	DeletePayment(ctx context.Context, purchaseID, paymentID string, userID string) (*domain.Purchase, error)
}
