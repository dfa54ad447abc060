package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/core/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/middleware"

	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, req dto.ListSalesRequest) ([]domain.Sale, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	args := m.Called(ctx, saleID, userID)
	return args.Error(0)
}
func (m *MockSaleService) RecordPayment(ctx context.Context, saleID string, req dto.RecordSalePaymentRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) DeletePayment(ctx context.Context, saleID, paymentID string, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ProcessReturn(ctx context.Context, saleID string, req dto.CreateReturnRequest, userID string) (*domain.Return, error) {
	args := m.Called(ctx, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}
func (m *MockSaleService) DeleteReturn(ctx context.Context, returnID string, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, returnID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Test Suite ---
type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
	jwtSecret       string
	userID          string
}

func (suite *SaleHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dokani-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSaleService = new(MockSaleService)

	v1 := suite.router.Group("/api/v1")
	registerSaleRoutes(v1, suite.mockSaleService)
}

func (suite *SaleHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	saleID := uuid.NewString()
	reqBody := dto.CreateSaleRequest{
		Items:        []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 3}},
		CustomerName: "Rahim",
		AmountPaid:   decimal.NewFromInt(100),
	}
	expected := &domain.Sale{
		SaleID:      saleID,
		Subtotal:    decimal.NewFromInt(150),
		TotalAmount: decimal.NewFromInt(165),
		Status:      domain.SalePartial,
	}

	suite.mockSaleService.On("CreateSale", mock.Anything, mock.MatchedBy(func(req dto.CreateSaleRequest) bool {
		return req.CustomerName == "Rahim" && len(req.Items) == 1
	}), suite.userID).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/sales", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(saleID, resp.SaleID)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(165)))
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_MissingItemsRejected() {
	reqBody := dto.CreateSaleRequest{CustomerName: "Rahim"}

	w := suite.doRequest(http.MethodPost, "/api/v1/sales", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleHandlerTestSuite) TestCreateSale_ProductNotFound() {
	reqBody := dto.CreateSaleRequest{
		Items:        []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		CustomerName: "Rahim",
	}

	suite.mockSaleService.On("CreateSale", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/sales", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFound() {
	saleID := uuid.NewString()
	suite.mockSaleService.On("GetSaleByID", mock.Anything, saleID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/sales/"+saleID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SaleHandlerTestSuite) TestRecordPayment_ExceedsRemaining() {
	saleID := uuid.NewString()
	reqBody := dto.RecordSalePaymentRequest{Amount: decimal.NewFromInt(500)}

	suite.mockSaleService.On("RecordPayment", mock.Anything, saleID, mock.Anything, suite.userID).
		Return(nil, services.ErrPaymentExceedsDue).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/sales/"+saleID+"/payments", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SaleHandlerTestSuite) TestDeletePayment_ProtectedEntry() {
	saleID := uuid.NewString()
	paymentID := uuid.NewString()

	suite.mockSaleService.On("DeletePayment", mock.Anything, saleID, paymentID, suite.userID).
		Return(nil, services.ErrProtectedEntry).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/sales/"+saleID+"/payments/"+paymentID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SaleHandlerTestSuite) TestDeleteSale_NotPaidConflict() {
	saleID := uuid.NewString()

	suite.mockSaleService.On("DeleteSale", mock.Anything, saleID, suite.userID).
		Return(apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/sales/"+saleID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SaleHandlerTestSuite) TestCreateReturn_Success() {
	saleID := uuid.NewString()
	returnID := uuid.NewString()
	reqBody := dto.CreateReturnRequest{
		Items:  []dto.ReturnItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		Reason: "damaged",
	}
	expected := &domain.Return{
		ReturnID:     returnID,
		SaleID:       saleID,
		Reason:       "damaged",
		RefundAmount: decimal.NewFromInt(120),
	}

	suite.mockSaleService.On("ProcessReturn", mock.Anything, saleID, mock.Anything, suite.userID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/sales/"+saleID+"/returns", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReturnResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(returnID, resp.ReturnID)
	suite.True(resp.RefundAmount.Equal(decimal.NewFromInt(120)))
}

func (suite *SaleHandlerTestSuite) TestDeleteReturn_Success() {
	returnID := uuid.NewString()
	expected := &domain.Sale{SaleID: uuid.NewString(), Status: domain.SalePartial}

	suite.mockSaleService.On("DeleteReturn", mock.Anything, returnID, suite.userID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/returns/"+returnID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func TestSaleHandler(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
