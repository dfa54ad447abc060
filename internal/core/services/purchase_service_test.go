package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/core/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
)

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseRepositoryFacade = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, params portsrepo.ListPurchasesParams) ([]domain.Purchase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchasePaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, initialPayment *domain.PurchasePayment) error {
	args := m.Called(ctx, purchase, initialPayment)
	return args.Error(0)
}

func (m *MockPurchaseRepository) AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchasePayment(ctx context.Context, purchaseID, paymentID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, purchaseID, paymentID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepository = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, search string, limit, offset int) ([]domain.Supplier, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockSupplierRepo *MockSupplierRepository
	service          portssvc.PurchaseSvcFacade
	userID           string
	supplier         domain.Supplier
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.service = services.NewPurchaseService(suite.mockPurchaseRepo, suite.mockSupplierRepo)

	suite.userID = uuid.NewString()
	suite.supplier = domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       "City Wholesale",
	}
}

// --- CreatePurchase ---

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_Success() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierName:  suite.supplier.Name,
		ProductName:   "Rice 25kg",
		Quantity:      40,
		UnitPrice:     decimal.NewFromInt(1200),
		TransportFee:  decimal.NewFromInt(2000),
		AmountPaid:    decimal.NewFromInt(30000),
		TransportPaid: decimal.NewFromInt(500),
	}

	suite.mockSupplierRepo.On("FindSupplierByName", ctx, suite.supplier.Name).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("*domain.PurchasePayment")).Return(nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.supplier.SupplierID, purchase.SupplierID)
	suite.True(purchase.BaseAmount.Equal(decimal.NewFromInt(48000)), "base was %s", purchase.BaseAmount)
	suite.True(purchase.RemainingAmount.Equal(decimal.NewFromInt(18000)))
	suite.True(purchase.TransportRemaining.Equal(decimal.NewFromInt(1500)))
	suite.Equal(domain.PurchasePending, purchase.Status)
	suite.Len(purchase.Payments, 1)

	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_CreatesMissingSupplier() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierName: "New Trader",
		ProductName:  "Lentils",
		Quantity:     10,
		UnitPrice:    decimal.NewFromInt(100),
	}

	suite.mockSupplierRepo.On("FindSupplierByName", ctx, "New Trader").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSupplierRepo.On("SaveSupplier", ctx, mock.AnythingOfType("domain.Supplier")).Return(nil).Once()
	suite.mockPurchaseRepo.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), (*domain.PurchasePayment)(nil)).Return(nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchasePending, purchase.Status)
	suite.Empty(purchase.Payments)
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_FullUpfrontIsComplete() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierName:  suite.supplier.Name,
		ProductName:   "Oil",
		Quantity:      5,
		UnitPrice:     decimal.NewFromInt(200),
		TransportFee:  decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(1000),
		TransportPaid: decimal.NewFromInt(100),
	}

	suite.mockSupplierRepo.On("FindSupplierByName", ctx, suite.supplier.Name).Return(&suite.supplier, nil).Once()
	suite.mockPurchaseRepo.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("*domain.PurchasePayment")).Return(nil).Once()

	purchase, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseComplete, purchase.Status)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_NegativeAmounts() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		SupplierName: suite.supplier.Name,
		ProductName:  "Oil",
		Quantity:     5,
		UnitPrice:    decimal.NewFromInt(200),
		AmountPaid:   decimal.NewFromInt(-1),
	}

	_, err := suite.service.CreatePurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePurchase", mock.Anything, mock.Anything, mock.Anything)
}

// --- RecordPayment ---

func (suite *PurchaseServiceTestSuite) TestRecordPayment_TransportOnly() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{
		PurchaseID:   purchaseID,
		BaseAmount:   decimal.NewFromInt(1000),
		TransportFee: decimal.NewFromInt(200),
		Status:       domain.PurchasePending,
	}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Twice()
	suite.mockPurchaseRepo.On("AppendPurchasePayment", ctx, mock.MatchedBy(func(p domain.PurchasePayment) bool {
		return p.PurchaseID == purchaseID && p.Amount.IsZero() && p.TransportAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	_, err := suite.service.RecordPayment(ctx, purchaseID, dto.RecordPurchasePaymentRequest{
		TransportAmount: decimal.NewFromInt(200),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestRecordPayment_BothAmountsZero() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordPurchasePaymentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyPayment)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DeletePayment ---

func (suite *PurchaseServiceTestSuite) TestDeletePayment_ProtectedFirstEntry() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	first := domain.PurchasePayment{PaymentID: uuid.NewString(), PurchaseID: purchaseID, Amount: decimal.NewFromInt(500), PaidAt: time.Now().Add(-time.Hour)}
	second := domain.PurchasePayment{PaymentID: uuid.NewString(), PurchaseID: purchaseID, Amount: decimal.NewFromInt(100), PaidAt: time.Now()}

	suite.mockPurchaseRepo.On("FindPurchasePayments", ctx, purchaseID).Return([]domain.PurchasePayment{first, second}, nil).Once()

	_, err := suite.service.DeletePayment(ctx, purchaseID, first.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedEntry)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "DeletePurchasePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestDeletePayment_LaterEntry() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	first := domain.PurchasePayment{PaymentID: uuid.NewString(), PurchaseID: purchaseID, Amount: decimal.NewFromInt(500), PaidAt: time.Now().Add(-time.Hour)}
	second := domain.PurchasePayment{PaymentID: uuid.NewString(), PurchaseID: purchaseID, Amount: decimal.NewFromInt(100), PaidAt: time.Now()}
	purchase := &domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchasePending}

	suite.mockPurchaseRepo.On("FindPurchasePayments", ctx, purchaseID).Return([]domain.PurchasePayment{first, second}, nil).Once()
	suite.mockPurchaseRepo.On("DeletePurchasePayment", ctx, purchaseID, second.PaymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	_, err := suite.service.DeletePayment(ctx, purchaseID, second.PaymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestDeletePayment_AnchorEnforcedOnWrite() {
	// The pre-check sees the entry alone; the repository re-checks the
	// history under the lock and rejects once a later entry has landed.
	ctx := context.Background()
	purchaseID := uuid.NewString()
	only := domain.PurchasePayment{PaymentID: uuid.NewString(), PurchaseID: purchaseID, Amount: decimal.NewFromInt(500), PaidAt: time.Now()}

	suite.mockPurchaseRepo.On("FindPurchasePayments", ctx, purchaseID).Return([]domain.PurchasePayment{only}, nil).Once()
	suite.mockPurchaseRepo.On("DeletePurchasePayment", ctx, purchaseID, only.PaymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(domain.ErrProtectedEntry).Once()

	_, err := suite.service.DeletePayment(ctx, purchaseID, only.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedEntry)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

// --- DeletePurchase ---

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_Success() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchaseComplete}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()
	suite.mockPurchaseRepo.On("DeletePurchase", ctx, purchaseID).Return(nil).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_NotSettled() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	purchase := &domain.Purchase{PurchaseID: purchaseID, Status: domain.PurchasePending}

	suite.mockPurchaseRepo.On("FindPurchaseByID", ctx, purchaseID).Return(purchase, nil).Once()

	err := suite.service.DeletePurchase(ctx, purchaseID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPurchaseNotComplete)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "DeletePurchase", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
