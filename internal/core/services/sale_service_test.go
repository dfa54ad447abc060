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

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, params portsrepo.ListSalesParams) ([]domain.Sale, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) FindSalePayments(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) FindSalePaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) FindReturnsBySaleID(ctx context.Context, saleID string) ([]domain.Return, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *MockSaleRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockSaleRepository) CountReturnsBySaleID(ctx context.Context, saleID string) (int64, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, initialPayment *domain.SalePayment) error {
	args := m.Called(ctx, sale, items, initialPayment)
	return args.Error(0)
}

func (m *MockSaleRepository) AppendSalePayment(ctx context.Context, payment domain.SalePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSalePayment(ctx context.Context, saleID, paymentID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, saleID, paymentID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockSaleRepository) ApplyReturn(ctx context.Context, sale domain.Sale, ret domain.Return, refund domain.SalePayment) error {
	args := m.Called(ctx, sale, ret, refund)
	return args.Error(0)
}

func (m *MockSaleRepository) ReverseReturn(ctx context.Context, sale domain.Sale, ret domain.Return) error {
	args := m.Called(ctx, sale, ret)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, nameSearch, categoryID string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, nameSearch, categoryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByNameAndPhone(ctx context.Context, name, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.SaleSvcFacade
	userID           string
	customer         domain.Customer
	product          domain.Product
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewSaleService(suite.mockSaleRepo, suite.mockProductRepo, suite.mockCustomerRepo)

	suite.userID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Rahim",
		Phone:      "01700000000",
	}
	suite.product = domain.Product{
		ProductID:     uuid.NewString(),
		Name:          "Soap",
		UnitPrice:     decimal.NewFromInt(50),
		Quantity:      100,
		UnitsPerBox:   10,
		ProfitPerUnit: decimal.NewFromInt(5),
		ProfitPerBox:  decimal.NewFromInt(40),
	}
}

// --- CreateSale ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerName:  suite.customer.Name,
		CustomerPhone: suite.customer.Phone,
		Items: []dto.SaleItemRequest{
			{ProductID: suite.product.ProductID, Quantity: 23},
		},
		AmountPaid: decimal.NewFromInt(500),
	}

	productsMap := map[string]domain.Product{suite.product.ProductID: suite.product}
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).Return(productsMap, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByNameAndPhone", ctx, suite.customer.Name, suite.customer.Phone).Return(&suite.customer, nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), mock.AnythingOfType("*domain.SalePayment")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(suite.customer.CustomerID, sale.CustomerID)
	// 23 units at 50 each
	suite.True(sale.Subtotal.Equal(decimal.NewFromInt(1150)), "subtotal was %s", sale.Subtotal)
	// 2 boxes at 40 plus 3 loose units at 5
	suite.True(sale.Profit.Equal(decimal.NewFromInt(95)), "profit was %s", sale.Profit)
	suite.True(sale.TotalAmount.Equal(decimal.NewFromInt(1245)), "total was %s", sale.TotalAmount)
	suite.True(sale.AmountPaid.Equal(decimal.NewFromInt(500)))
	suite.True(sale.RemainingAmount.Equal(decimal.NewFromInt(745)))
	suite.Equal(domain.SalePartial, sale.Status)
	suite.Len(sale.Payments, 1)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_CreatesMissingCustomer() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerName:  "Karim",
		CustomerPhone: "01800000000",
		Items: []dto.SaleItemRequest{
			{ProductID: suite.product.ProductID, Quantity: 1},
		},
	}

	productsMap := map[string]domain.Product{suite.product.ProductID: suite.product}
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).Return(productsMap, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByNameAndPhone", ctx, "Karim", "01800000000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), (*domain.SalePayment)(nil)).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SalePending, sale.Status)
	suite.Empty(sale.Payments)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_ProductNotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.CreateSaleRequest{
		CustomerName: "Rahim",
		Items: []dto.SaleItemRequest{
			{ProductID: missingID, Quantity: 2},
		},
	}

	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{missingID}).Return(map[string]domain.Product{}, nil).Once()

	_, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_NegativeInitialPayment() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerName: "Rahim",
		Items: []dto.SaleItemRequest{
			{ProductID: suite.product.ProductID, Quantity: 1},
		},
		AmountPaid: decimal.NewFromInt(-10),
	}

	_, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_DiscountReducesProfit() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		CustomerName:  suite.customer.Name,
		CustomerPhone: suite.customer.Phone,
		Items: []dto.SaleItemRequest{
			{ProductID: suite.product.ProductID, Quantity: 10},
		},
		Discount: decimal.NewFromInt(15),
	}

	productsMap := map[string]domain.Product{suite.product.ProductID: suite.product}
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.product.ProductID}).Return(productsMap, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByNameAndPhone", ctx, suite.customer.Name, suite.customer.Phone).Return(&suite.customer, nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), (*domain.SalePayment)(nil)).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// one whole box: profit 40, minus discount 15
	suite.True(sale.Profit.Equal(decimal.NewFromInt(25)), "profit was %s", sale.Profit)
	suite.True(sale.TotalAmount.Equal(decimal.NewFromInt(525)), "total was %s", sale.TotalAmount)
}

// --- RecordPayment ---

func (suite *SaleServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:      saleID,
		TotalAmount: decimal.NewFromInt(500),
		Status:      domain.SalePartial,
		Balances: domain.Balances{
			AmountPaid:      decimal.NewFromInt(300),
			RemainingAmount: decimal.NewFromInt(200),
		},
	}
	paid := &domain.Sale{
		SaleID:      saleID,
		TotalAmount: decimal.NewFromInt(500),
		Status:      domain.SalePaid,
		Balances: domain.Balances{
			AmountPaid:      decimal.NewFromInt(500),
			RemainingAmount: decimal.Zero,
		},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("AppendSalePayment", ctx, mock.MatchedBy(func(p domain.SalePayment) bool {
		return p.SaleID == saleID && p.Amount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(paid, nil).Once()

	result, err := suite.service.RecordPayment(ctx, saleID, dto.RecordSalePaymentRequest{Amount: decimal.NewFromInt(200)}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SalePaid, result.Status)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordPayment_ExceedsRemaining() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:      saleID,
		TotalAmount: decimal.NewFromInt(500),
		Balances: domain.Balances{
			AmountPaid:      decimal.NewFromInt(300),
			RemainingAmount: decimal.NewFromInt(200),
		},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	_, err := suite.service.RecordPayment(ctx, saleID, dto.RecordSalePaymentRequest{Amount: decimal.NewFromInt(201)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentExceedsDue)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "AppendSalePayment", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestRecordPayment_CapEnforcedOnWrite() {
	// The pre-check sees stale balances with room to spare; the repository,
	// holding the row lock, sees a history that no longer has it.
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:      saleID,
		TotalAmount: decimal.NewFromInt(500),
		Balances: domain.Balances{
			RemainingAmount: decimal.NewFromInt(500),
		},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("AppendSalePayment", ctx, mock.AnythingOfType("domain.SalePayment")).Return(domain.ErrPaymentExceedsDue).Once()

	_, err := suite.service.RecordPayment(ctx, saleID, dto.RecordSalePaymentRequest{Amount: decimal.NewFromInt(300)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentExceedsDue)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), dto.RecordSalePaymentRequest{Amount: decimal.Zero}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DeletePayment ---

func (suite *SaleServiceTestSuite) TestDeletePayment_ProtectedFirstEntry() {
	ctx := context.Background()
	saleID := uuid.NewString()
	first := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(100), PaidAt: time.Now().Add(-2 * time.Hour)}
	second := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(50), PaidAt: time.Now().Add(-1 * time.Hour)}

	suite.mockSaleRepo.On("FindSalePayments", ctx, saleID).Return([]domain.SalePayment{first, second}, nil).Once()

	_, err := suite.service.DeletePayment(ctx, saleID, first.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedEntry)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSalePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeletePayment_FirstEntryDeletableWhenAlone() {
	ctx := context.Background()
	saleID := uuid.NewString()
	only := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(100), PaidAt: time.Now()}
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePending}

	suite.mockSaleRepo.On("FindSalePayments", ctx, saleID).Return([]domain.SalePayment{only}, nil).Once()
	suite.mockSaleRepo.On("DeleteSalePayment", ctx, saleID, only.PaymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	_, err := suite.service.DeletePayment(ctx, saleID, only.PaymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeletePayment_LaterEntry() {
	ctx := context.Background()
	saleID := uuid.NewString()
	first := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(100), PaidAt: time.Now().Add(-2 * time.Hour)}
	second := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(50), PaidAt: time.Now().Add(-1 * time.Hour)}
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePartial}

	suite.mockSaleRepo.On("FindSalePayments", ctx, saleID).Return([]domain.SalePayment{first, second}, nil).Once()
	suite.mockSaleRepo.On("DeleteSalePayment", ctx, saleID, second.PaymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	_, err := suite.service.DeletePayment(ctx, saleID, second.PaymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeletePayment_NotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("FindSalePayments", ctx, saleID).Return([]domain.SalePayment{}, nil).Once()

	_, err := suite.service.DeletePayment(ctx, saleID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SaleServiceTestSuite) TestDeletePayment_AnchorEnforcedOnWrite() {
	// The history read by the pre-check has a lone entry; by the time the
	// repository holds the lock a concurrent append has landed behind it.
	ctx := context.Background()
	saleID := uuid.NewString()
	only := domain.SalePayment{PaymentID: uuid.NewString(), SaleID: saleID, Amount: decimal.NewFromInt(100), PaidAt: time.Now()}

	suite.mockSaleRepo.On("FindSalePayments", ctx, saleID).Return([]domain.SalePayment{only}, nil).Once()
	suite.mockSaleRepo.On("DeleteSalePayment", ctx, saleID, only.PaymentID, suite.userID, mock.AnythingOfType("time.Time")).Return(domain.ErrProtectedEntry).Once()

	_, err := suite.service.DeletePayment(ctx, saleID, only.PaymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedEntry)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

// --- ProcessReturn ---

func (suite *SaleServiceTestSuite) TestProcessReturn_RefundIncludesProfitShare() {
	ctx := context.Background()
	saleID := uuid.NewString()
	productID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:      saleID,
		Subtotal:    decimal.NewFromInt(1000),
		Profit:      decimal.NewFromInt(200),
		TotalAmount: decimal.NewFromInt(1200),
	}
	items := []domain.SaleItem{
		{SaleItemID: uuid.NewString(), SaleID: saleID, ProductID: productID, Quantity: 10, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(1000)},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleItems", ctx, saleID).Return(items, nil).Once()
	suite.mockSaleRepo.On("ApplyReturn", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.Subtotal.Equal(decimal.NewFromInt(900)) &&
			s.Profit.Equal(decimal.NewFromInt(180)) &&
			s.TotalAmount.Equal(decimal.NewFromInt(1080))
	}), mock.MatchedBy(func(r domain.Return) bool {
		return r.RefundAmount.Equal(decimal.NewFromInt(120)) &&
			r.SubtotalShare.Equal(decimal.NewFromInt(100)) &&
			r.ProfitShare.Equal(decimal.NewFromInt(20))
	}), mock.MatchedBy(func(p domain.SalePayment) bool {
		return p.Amount.Equal(decimal.NewFromInt(-120))
	})).Return(nil).Once()

	ret, err := suite.service.ProcessReturn(ctx, saleID, dto.CreateReturnRequest{
		Reason: "damaged",
		Items:  []dto.ReturnItemRequest{{ProductID: productID, Quantity: 1}},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(ret.RefundAmount.Equal(decimal.NewFromInt(120)), "refund was %s", ret.RefundAmount)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessReturn_ZeroSubtotalRefundsPriceOnly() {
	ctx := context.Background()
	saleID := uuid.NewString()
	productID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:      saleID,
		Subtotal:    decimal.Zero,
		Profit:      decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	items := []domain.SaleItem{
		{SaleItemID: uuid.NewString(), SaleID: saleID, ProductID: productID, Quantity: 5, UnitPrice: decimal.Zero, Subtotal: decimal.Zero},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleItems", ctx, saleID).Return(items, nil).Once()
	suite.mockSaleRepo.On("ApplyReturn", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	ret, err := suite.service.ProcessReturn(ctx, saleID, dto.CreateReturnRequest{
		Reason: "unwanted",
		Items:  []dto.ReturnItemRequest{{ProductID: productID, Quantity: 2}},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(ret.RefundAmount.IsZero())
}

func (suite *SaleServiceTestSuite) TestProcessReturn_ItemNotInSale() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Subtotal: decimal.NewFromInt(100)}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleItems", ctx, saleID).Return([]domain.SaleItem{}, nil).Once()

	_, err := suite.service.ProcessReturn(ctx, saleID, dto.CreateReturnRequest{
		Reason: "wrong item",
		Items:  []dto.ReturnItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrItemNotInSale)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "ApplyReturn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestProcessReturn_QuantityExceedsSold() {
	ctx := context.Background()
	saleID := uuid.NewString()
	productID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Subtotal: decimal.NewFromInt(100)}
	items := []domain.SaleItem{
		{SaleItemID: uuid.NewString(), SaleID: saleID, ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleItems", ctx, saleID).Return(items, nil).Once()

	_, err := suite.service.ProcessReturn(ctx, saleID, dto.CreateReturnRequest{
		Reason: "too many",
		Items:  []dto.ReturnItemRequest{{ProductID: productID, Quantity: 3}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReturnExceedsSold)
}

func (suite *SaleServiceTestSuite) TestProcessReturn_SoldQuantityEnforcedOnWrite() {
	// A double-submitted return passes the pre-check twice against the same
	// snapshot; the second ApplyReturn finds the item line already shrunk.
	ctx := context.Background()
	saleID := uuid.NewString()
	productID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Subtotal: decimal.NewFromInt(100)}
	items := []domain.SaleItem{
		{SaleItemID: uuid.NewString(), SaleID: saleID, ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleItems", ctx, saleID).Return(items, nil).Once()
	suite.mockSaleRepo.On("ApplyReturn", ctx, mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrReturnExceedsSold).Once()

	_, err := suite.service.ProcessReturn(ctx, saleID, dto.CreateReturnRequest{
		Reason: "resubmitted",
		Items:  []dto.ReturnItemRequest{{ProductID: productID, Quantity: 2}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReturnExceedsSold)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

// --- DeleteReturn ---

func (suite *SaleServiceTestSuite) TestDeleteReturn_RestoresSale() {
	ctx := context.Background()
	saleID := uuid.NewString()
	returnID := uuid.NewString()
	ret := &domain.Return{
		ReturnID:      returnID,
		SaleID:        saleID,
		RefundAmount:  decimal.NewFromInt(120),
		SubtotalShare: decimal.NewFromInt(100),
		ProfitShare:   decimal.NewFromInt(20),
	}
	shrunk := &domain.Sale{
		SaleID:      saleID,
		Subtotal:    decimal.NewFromInt(900),
		Profit:      decimal.NewFromInt(180),
		TotalAmount: decimal.NewFromInt(1080),
	}
	restored := &domain.Sale{
		SaleID:      saleID,
		Subtotal:    decimal.NewFromInt(1000),
		Profit:      decimal.NewFromInt(200),
		TotalAmount: decimal.NewFromInt(1200),
	}

	suite.mockSaleRepo.On("FindReturnByID", ctx, returnID).Return(ret, nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(shrunk, nil).Once()
	suite.mockSaleRepo.On("ReverseReturn", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.Subtotal.Equal(decimal.NewFromInt(1000)) &&
			s.Profit.Equal(decimal.NewFromInt(200)) &&
			s.TotalAmount.Equal(decimal.NewFromInt(1200))
	}), *ret).Return(nil).Once()
	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(restored, nil).Once()

	result, err := suite.service.DeleteReturn(ctx, returnID, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.TotalAmount.Equal(decimal.NewFromInt(1200)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

// --- DeleteSale ---

func (suite *SaleServiceTestSuite) TestDeleteSale_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePaid}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("CountReturnsBySaleID", ctx, saleID).Return(int64(0), nil).Once()
	suite.mockSaleRepo.On("DeleteSale", ctx, saleID).Return(nil).Once()

	err := suite.service.DeleteSale(ctx, saleID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSale_NotFullyPaid() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePartial}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	err := suite.service.DeleteSale(ctx, saleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSaleNotPaid)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeleteSale_HasReturns() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, Status: domain.SalePaid}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("CountReturnsBySaleID", ctx, saleID).Return(int64(1), nil).Once()

	err := suite.service.DeleteSale(ctx, saleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSaleHasReturns)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSale", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
