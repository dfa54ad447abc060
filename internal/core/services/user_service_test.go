package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/core/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/platform/config"
	"github.com/dokani-app/dokani_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	cfg          *config.Config
	ctx          context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "dokani-test",
	}
	s.service = services.NewUserService(s.mockUserRepo, s.cfg)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestRegister_Success() {
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "shopkeeper").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "shopkeeper" && u.UserID != "" &&
			utils.CheckPasswordHash("s3cret-pw", u.PasswordHash)
	})).Return(nil).Once()

	user, err := s.service.Register(s.ctx, dto.RegisterUserRequest{
		Username: "shopkeeper",
		Name:     "Shop Keeper",
		Password: "s3cret-pw",
	})

	s.NoError(err)
	s.NotNil(user)
	s.Equal("shopkeeper", user.Username)
	s.NotEqual("s3cret-pw", user.PasswordHash)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegister_DuplicateUsername() {
	existing := &domain.User{UserID: "u1", Username: "shopkeeper"}
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "shopkeeper").
		Return(existing, nil).Once()

	user, err := s.service.Register(s.ctx, dto.RegisterUserRequest{
		Username: "shopkeeper",
		Name:     "Shop Keeper",
		Password: "s3cret-pw",
	})

	s.Nil(user)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestLogin_Success() {
	hash, err := utils.HashPassword("s3cret-pw")
	s.Require().NoError(err)

	s.mockUserRepo.On("FindUserByUsername", s.ctx, "shopkeeper").
		Return(&domain.User{UserID: "u1", Username: "shopkeeper", Name: "Shop Keeper", PasswordHash: hash}, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "shopkeeper", Password: "s3cret-pw"})

	s.NoError(err)
	s.Require().NotNil(resp)
	s.Equal("u1", resp.UserID)

	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	s.NoError(err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	s.Equal("u1", claims.Subject)
	s.Equal("dokani-test", claims.Issuer)
}

func (s *UserServiceTestSuite) TestLogin_WrongPassword() {
	hash, err := utils.HashPassword("s3cret-pw")
	s.Require().NoError(err)

	s.mockUserRepo.On("FindUserByUsername", s.ctx, "shopkeeper").
		Return(&domain.User{UserID: "u1", Username: "shopkeeper", PasswordHash: hash}, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "shopkeeper", Password: "wrong"})

	s.Nil(resp)
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestLogin_UnknownUser() {
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	s.Nil(resp)
	s.ErrorIs(err, services.ErrInvalidCredentials)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
