package services

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
)

// UserSvcFacade defines operator management.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade authenticates operators and issues bearer tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
