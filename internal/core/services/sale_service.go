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
	"github.com/dokani-app/dokani_backend/internal/utils/pricing"
)

var (
	ErrSaleNotPaid    = errors.New("sale must be fully paid before deletion")
	ErrSaleHasReturns = errors.New("sale with returns cannot be deleted")
	ErrItemNotInSale  = errors.New("returned product is not part of the sale")
	ErrDuplicateLine  = errors.New("duplicate product line in request")

	// Shared with the repositories, which enforce them under the row lock.
	ErrProtectedEntry    = domain.ErrProtectedEntry
	ErrPaymentExceedsDue = domain.ErrPaymentExceedsDue
	ErrReturnExceedsSold = domain.ErrReturnExceedsSold
)

// saleService implements the customer sales ledger.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryFacade
	productRepo  portsrepo.ProductRepository
	customerRepo portsrepo.CustomerRepository
}

// NewSaleService creates a new SaleService.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, productRepo portsrepo.ProductRepository, customerRepo portsrepo.CustomerRepository) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale computes the sale's principal (subtotal + apportioned profit -
// discount), finds or creates the customer, and persists the sale together
// with its items, the stock decrement, and the optional initial ledger entry.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: initial payment cannot be negative", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", apperrors.ErrValidation)
	}

	productIDs := make([]string, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %s", ErrDuplicateLine, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	productsMap, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("Failed to fetch products for sale creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	now := time.Now().UTC()
	saleID := uuid.NewString()

	subtotal := decimal.Zero
	grossProfit := decimal.Zero
	items := make([]domain.SaleItem, len(req.Items))
	for i, itemReq := range req.Items {
		product, found := productsMap[itemReq.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, itemReq.ProductID)
		}

		lineSubtotal := product.UnitPrice.Mul(decimal.NewFromInt(itemReq.Quantity))
		subtotal = subtotal.Add(lineSubtotal)
		grossProfit = grossProfit.Add(pricing.ApportionProfit(itemReq.Quantity, product.UnitsPerBox, product.ProfitPerUnit, product.ProfitPerBox))

		items[i] = domain.SaleItem{
			SaleItemID:  uuid.NewString(),
			SaleID:      saleID,
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    itemReq.Quantity,
			UnitPrice:   product.UnitPrice,
			Subtotal:    lineSubtotal,
		}
	}

	// Profit is stored net of the per-sale discount.
	profit := grossProfit.Sub(req.Discount)
	totalAmount := subtotal.Add(profit)

	customer, err := s.findOrCreateCustomer(ctx, req.CustomerName, req.CustomerPhone, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	var initialPayment *domain.SalePayment
	entries := []ledger.Line{}
	if req.AmountPaid.IsPositive() {
		initialPayment = &domain.SalePayment{
			PaymentID:   uuid.NewString(),
			SaleID:      saleID,
			Amount:      req.AmountPaid,
			Method:      paymentMethodOrDefault(req.PaymentMethod),
			Notes:       "Initial payment",
			PaidAt:      now,
			AuditFields: audit,
		}
		entries = append(entries, ledger.Line{Amount: initialPayment.Amount})
	}

	balances := ledger.Project(totalAmount, decimal.Zero, entries)
	sale := domain.Sale{
		SaleID:      saleID,
		CustomerID:  customer.CustomerID,
		SaleDate:    now,
		Subtotal:    subtotal,
		Discount:    req.Discount,
		Profit:      profit,
		TotalAmount: totalAmount,
		Status:      ledger.SaleStatusFor(balances),
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		Balances:    balances,
		AuditFields: audit,
	}

	if err := s.saleRepo.SaveSale(ctx, sale, items, initialPayment); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale created", slog.String("sale_id", saleID), slog.String("total", totalAmount.String()))
	sale.Items = items
	if initialPayment != nil {
		sale.Payments = []domain.SalePayment{*initialPayment}
	}
	return &sale, nil
}

// findOrCreateCustomer looks a customer up by exact (name, phone) match and
// creates one when absent.
func (s *saleService) findOrCreateCustomer(ctx context.Context, name, phone, creatorUserID string, now time.Time) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByNameAndPhone(ctx, name, phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	newCustomer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       name,
		Phone:      phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.customerRepo.SaveCustomer(ctx, newCustomer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &newCustomer, nil
}

// GetSaleByID retrieves a sale with its items, payment history, and returns.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if sale.Items, err = s.saleRepo.FindSaleItems(ctx, saleID); err != nil {
		return nil, fmt.Errorf("failed to fetch sale items: %w", err)
	}
	if sale.Payments, err = s.saleRepo.FindSalePayments(ctx, saleID); err != nil {
		return nil, fmt.Errorf("failed to fetch sale payments: %w", err)
	}
	if sale.Returns, err = s.saleRepo.FindReturnsBySaleID(ctx, saleID); err != nil {
		return nil, fmt.Errorf("failed to fetch sale returns: %w", err)
	}
	return sale, nil
}

// ListSales retrieves sales matching the request filters.
func (s *saleService) ListSales(ctx context.Context, req dto.ListSalesRequest) ([]domain.Sale, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.saleRepo.ListSales(ctx, portsrepo.ListSalesParams{
		SaleID:        req.SaleID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        domain.SaleStatus(req.Status),
		Limit:         limit,
		Offset:        req.Offset,
	})
}

// RecordPayment appends a ledger entry to the sale. The amount must be
// positive and must not exceed the remaining balance.
func (s *saleService) RecordPayment(ctx context.Context, saleID string, req dto.RecordSalePaymentRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(sale.RemainingAmount) {
		return nil, fmt.Errorf("%w: remaining is %s", ErrPaymentExceedsDue, sale.RemainingAmount.String())
	}

	now := time.Now().UTC()
	payment := domain.SalePayment{
		PaymentID: uuid.NewString(),
		SaleID:    saleID,
		Amount:    req.Amount,
		Method:    paymentMethodOrDefault(req.Method),
		Notes:     req.Notes,
		PaidAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.saleRepo.AppendSalePayment(ctx, payment); err != nil {
		logger.Error("Failed to append sale payment", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	logger.Info("Sale payment recorded", slog.String("sale_id", saleID), slog.String("amount", req.Amount.String()))
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

// DeletePayment retracts a ledger entry. The chronologically first entry is
// the reconciliation anchor and cannot be removed while later entries exist.
func (s *saleService) DeletePayment(ctx context.Context, saleID, paymentID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payments, err := s.saleRepo.FindSalePayments(ctx, saleID)
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

	if err := s.saleRepo.DeleteSalePayment(ctx, saleID, paymentID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete sale payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	logger.Info("Sale payment deleted", slog.String("sale_id", saleID), slog.String("payment_id", paymentID))
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

// ProcessReturn validates the returned items against the sale's lines,
// computes the refund including the proportional profit share, and applies
// the return atomically: the sale shrinks as if the items were never sold,
// a negative ledger entry is appended, and stock is restored.
func (s *saleService) ProcessReturn(ctx context.Context, saleID string, req dto.CreateReturnRequest, userID string) (*domain.Return, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	saleItems, err := s.saleRepo.FindSaleItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale items: %w", err)
	}

	itemsByProduct := make(map[string]domain.SaleItem, len(saleItems))
	for _, it := range saleItems {
		itemsByProduct[it.ProductID] = it
	}

	now := time.Now().UTC()
	returnID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	// Refund ratio: each returned unit brings back its price plus the sale's
	// profit share per subtotal unit. A zero-subtotal sale refunds price only.
	profitRatio := decimal.Zero
	if sale.Subtotal.IsPositive() {
		profitRatio = sale.Profit.Div(sale.Subtotal)
	}

	subtotalShare := decimal.Zero
	seen := make(map[string]struct{}, len(req.Items))
	returnItems := make([]domain.ReturnItem, len(req.Items))
	for i, itemReq := range req.Items {
		if _, dup := seen[itemReq.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %s", ErrDuplicateLine, itemReq.ProductID)
		}
		seen[itemReq.ProductID] = struct{}{}

		soldItem, found := itemsByProduct[itemReq.ProductID]
		if !found {
			return nil, fmt.Errorf("%w: product %s", ErrItemNotInSale, itemReq.ProductID)
		}
		if itemReq.Quantity > soldItem.Quantity {
			return nil, fmt.Errorf("%w: product %s sold %d, returning %d", ErrReturnExceedsSold, itemReq.ProductID, soldItem.Quantity, itemReq.Quantity)
		}

		subtotalShare = subtotalShare.Add(soldItem.UnitPrice.Mul(decimal.NewFromInt(itemReq.Quantity)))
		returnItems[i] = domain.ReturnItem{
			ReturnItemID: uuid.NewString(),
			ReturnID:     returnID,
			ProductID:    itemReq.ProductID,
			Quantity:     itemReq.Quantity,
			UnitPrice:    soldItem.UnitPrice,
		}
	}

	profitShare := subtotalShare.Mul(profitRatio)
	refundAmount := subtotalShare.Add(profitShare)

	ret := domain.Return{
		ReturnID:      returnID,
		SaleID:        saleID,
		PaymentID:     uuid.NewString(),
		Reason:        req.Reason,
		RefundAmount:  refundAmount,
		SubtotalShare: subtotalShare,
		ProfitShare:   profitShare,
		AuditFields:   audit,
		Items:         returnItems,
	}

	refund := domain.SalePayment{
		PaymentID:   ret.PaymentID,
		SaleID:      saleID,
		Amount:      refundAmount.Neg(),
		Method:      domain.MethodCash,
		Notes:       "Refund for return " + returnID,
		PaidAt:      now,
		AuditFields: audit,
	}

	// Shrink the sale as if the returned items were never sold.
	shrunk := *sale
	shrunk.Subtotal = sale.Subtotal.Sub(subtotalShare)
	shrunk.Profit = sale.Profit.Sub(profitShare)
	shrunk.TotalAmount = sale.TotalAmount.Sub(refundAmount)
	shrunk.LastUpdatedAt = now
	shrunk.LastUpdatedBy = userID

	if err := s.saleRepo.ApplyReturn(ctx, shrunk, ret, refund); err != nil {
		logger.Error("Failed to apply return", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to apply return: %w", err)
	}

	logger.Info("Return processed", slog.String("sale_id", saleID), slog.String("return_id", returnID), slog.String("refund", refundAmount.String()))
	return &ret, nil
}

// DeleteReturn reverses a return in full: the refund entry disappears from
// the ledger, the sale's base amounts and item lines are restored, and the
// returned quantities leave stock again.
func (s *saleService) DeleteReturn(ctx context.Context, returnID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ret, err := s.saleRepo.FindReturnByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindSaleByID(ctx, ret.SaleID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	restored := *sale
	restored.Subtotal = sale.Subtotal.Add(ret.SubtotalShare)
	restored.Profit = sale.Profit.Add(ret.ProfitShare)
	restored.TotalAmount = sale.TotalAmount.Add(ret.RefundAmount)
	restored.LastUpdatedAt = now
	restored.LastUpdatedBy = userID

	if err := s.saleRepo.ReverseReturn(ctx, restored, *ret); err != nil {
		logger.Error("Failed to reverse return", slog.String("error", err.Error()), slog.String("return_id", returnID))
		return nil, fmt.Errorf("failed to reverse return: %w", err)
	}

	logger.Info("Return deleted", slog.String("return_id", returnID), slog.String("sale_id", ret.SaleID))
	return s.saleRepo.FindSaleByID(ctx, ret.SaleID)
}

// DeleteSale removes a fully paid sale with no attached returns, restoring
// the sold stock and cascading to its ledger entries.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale.Status != domain.SalePaid {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSaleNotPaid)
	}

	returnCount, err := s.saleRepo.CountReturnsBySaleID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("failed to count returns: %w", err)
	}
	if returnCount > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSaleHasReturns)
	}

	if err := s.saleRepo.DeleteSale(ctx, saleID); err != nil {
		logger.Error("Failed to delete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID), slog.String("user_id", userID))
	return nil
}

// paymentMethodOrDefault maps an optional request method to a domain method,
// defaulting to cash.
func paymentMethodOrDefault(method string) domain.PaymentMethod {
	if method == "" {
		return domain.MethodCash
	}
	return domain.PaymentMethod(method)
}
