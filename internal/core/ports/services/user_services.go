package services

import (
	"context"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/dto"
)

// UserSvcFacade exposes the thin session gate in front of the ledger core.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
