package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/core/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/platform/config"

	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *MockUserService
}

func (suite *AuthHandlerTestSuite) setup(rateLimit string) {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockUserService = new(MockUserService)
	registerAuthRoutes(suite.router, &config.Config{RateLimit: rateLimit}, suite.mockUserService)
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.setup("5-M")
}

func (suite *AuthHandlerTestSuite) postLogin(body dto.LoginRequest) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	resp := &dto.LoginResponse{Token: "signed-token", UserID: "u1", Name: "Shop Keeper"}
	suite.mockUserService.On("Login", mock.Anything, dto.LoginRequest{Username: "shopkeeper", Password: "s3cret-pw"}).Return(resp, nil).Once()

	w := suite.postLogin(dto.LoginRequest{Username: "shopkeeper", Password: "s3cret-pw"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "signed-token")
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).Return(nil, services.ErrInvalidCredentials).Once()

	w := suite.postLogin(dto.LoginRequest{Username: "shopkeeper", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_ConfiguredRateLimitApplies() {
	// Two attempts per minute configured; the third request from the same IP
	// must be rejected before it reaches the service.
	suite.setup("2-M")
	suite.mockUserService.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).Return(nil, services.ErrInvalidCredentials).Twice()

	body := dto.LoginRequest{Username: "shopkeeper", Password: "wrong"}
	suite.Equal(http.StatusUnauthorized, suite.postLogin(body).Code)
	suite.Equal(http.StatusUnauthorized, suite.postLogin(body).Code)
	suite.Equal(http.StatusTooManyRequests, suite.postLogin(body).Code)

	suite.mockUserService.AssertNumberOfCalls(suite.T(), "Login", 2)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
