package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/middleware"
	"github.com/dokani-app/dokani_backend/internal/utils/ledger"
)

var (
	ErrPurchaseNotComplete = errors.New("purchase must be fully settled before deletion")
	ErrEmptyPayment        = errors.New("at least one of amount and transport amount must be positive")
)

// purchaseService implements the supplier purchase ("ograi") ledger. Each
// purchase carries two balance pairs, product and transport, settled by
// combined ledger entries.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	supplierRepo portsrepo.SupplierRepository
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryFacade, supplierRepo portsrepo.SupplierRepository) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchase finds or creates the supplier by name and persists the
// purchase with its two balance pairs and the optional initial combined entry.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountPaid.IsNegative() || req.TransportPaid.IsNegative() {
		return nil, fmt.Errorf("%w: initial payments cannot be negative", apperrors.ErrValidation)
	}
	if req.TransportFee.IsNegative() {
		return nil, fmt.Errorf("%w: transport fee cannot be negative", apperrors.ErrValidation)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != nil {
		purchaseDate = req.PurchaseDate.UTC()
	}

	supplier, err := s.findOrCreateSupplier(ctx, req.SupplierName, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	purchaseID := uuid.NewString()
	baseAmount := req.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	var initialPayment *domain.PurchasePayment
	entries := []ledger.Line{}
	if req.AmountPaid.IsPositive() || req.TransportPaid.IsPositive() {
		initialPayment = &domain.PurchasePayment{
			PaymentID:       uuid.NewString(),
			PurchaseID:      purchaseID,
			Amount:          req.AmountPaid,
			TransportAmount: req.TransportPaid,
			Method:          paymentMethodOrDefault(req.PaymentMethod),
			Notes:           "Initial payment",
			PaidAt:          now,
			AuditFields:     audit,
		}
		entries = append(entries, ledger.Line{Amount: req.AmountPaid, TransportAmount: req.TransportPaid})
	}

	balances := ledger.Project(baseAmount, req.TransportFee, entries)
	purchase := domain.Purchase{
		PurchaseID:   purchaseID,
		SupplierID:   supplier.SupplierID,
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		BaseAmount:   baseAmount,
		TransportFee: req.TransportFee,
		PurchaseDate: purchaseDate,
		Status:       ledger.PurchaseStatusFor(balances),
		Notes:        req.Notes,
		Balances:     balances,
		AuditFields:  audit,
	}

	if err := s.purchaseRepo.SavePurchase(ctx, purchase, initialPayment); err != nil {
		logger.Error("Failed to save purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	logger.Info("Purchase created", slog.String("purchase_id", purchaseID), slog.String("base", baseAmount.String()))
	if initialPayment != nil {
		purchase.Payments = []domain.PurchasePayment{*initialPayment}
	}
	return &purchase, nil
}

func (s *purchaseService) findOrCreateSupplier(ctx context.Context, name, creatorUserID string, now time.Time) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByName(ctx, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up supplier: %w", err)
	}

	newSupplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.supplierRepo.SaveSupplier(ctx, newSupplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return &newSupplier, nil
}

// GetPurchaseByID retrieves a purchase with its payment history.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Payments, err = s.purchaseRepo.FindPurchasePayments(ctx, purchaseID); err != nil {
		return nil, fmt.Errorf("failed to fetch purchase payments: %w", err)
	}
	return purchase, nil
}

// ListPurchases retrieves purchases matching the request filters.
func (s *purchaseService) ListPurchases(ctx context.Context, req dto.ListPurchasesRequest) ([]domain.Purchase, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.purchaseRepo.ListPurchases(ctx, portsrepo.ListPurchasesParams{
		SupplierID: req.SupplierID,
		Pending:    req.Status == "pending",
		Cleared:    req.Status == "cleared",
		Limit:      limit,
		Offset:     req.Offset,
	})
}

// RecordPayment appends a combined product/transport ledger entry. Unlike
// sales, overpayment is allowed here; the projector tracks the excess.
func (s *purchaseService) RecordPayment(ctx context.Context, purchaseID string, req dto.RecordPurchasePaymentRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() || req.TransportAmount.IsNegative() {
		return nil, fmt.Errorf("%w: payment amounts cannot be negative", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() && !req.TransportAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmptyPayment)
	}

	if _, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.PurchasePayment{
		PaymentID:       uuid.NewString(),
		PurchaseID:      purchaseID,
		Amount:          req.Amount,
		TransportAmount: req.TransportAmount,
		Method:          paymentMethodOrDefault(req.Method),
		Notes:           req.Notes,
		PaidAt:          now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.purchaseRepo.AppendPurchasePayment(ctx, payment); err != nil {
		logger.Error("Failed to append purchase payment", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Purchase payment recorded", slog.String("purchase_id", purchaseID), slog.String("amount", req.Amount.String()), slog.String("transport_amount", req.TransportAmount.String()))
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

// ListPayments retrieves a purchase's payment history in chronological order.
func (s *purchaseService) ListPayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	if _, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return nil, err
	}
	return s.purchaseRepo.FindPurchasePayments(ctx, purchaseID)
}

// DeletePayment retracts a ledger entry. The chronologically first entry is
// protected while later entries exist, same as on the sales side.
func (s *purchaseService) DeletePayment(ctx context.Context, purchaseID, paymentID string, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payments, err := s.purchaseRepo.FindPurchasePayments(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range payments {
		if p.PaymentID == paymentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	if idx == 0 && len(payments) > 1 {
		return nil, ErrProtectedEntry
	}

	if err := s.purchaseRepo.DeletePurchasePayment(ctx, purchaseID, paymentID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete purchase payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	logger.Info("Purchase payment deleted", slog.String("purchase_id", purchaseID), slog.String("payment_id", paymentID))
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

// DeletePurchase removes a fully settled purchase, cascading to its entries.
func (s *purchaseService) DeletePurchase(ctx context.Context, purchaseID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase.Status != domain.PurchaseComplete {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrPurchaseNotComplete)
	}

	if err := s.purchaseRepo.DeletePurchase(ctx, purchaseID); err != nil {
		logger.Error("Failed to delete purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID), slog.String("user_id", userID))
	return nil
}
