package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
	"github.com/shopkhata/shopkhata_backend/internal/middleware"
	"github.com/shopkhata/shopkhata_backend/internal/utils"
)

// authService authenticates operators and issues bearer tokens.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtIssuer string
	jwtExpiry time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret, jwtIssuer string, jwtExpiry time.Duration) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		jwtExpiry: jwtExpiry,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		logger.Warn("Login failed", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, expiresAt, err := utils.GenerateAuthToken(user, s.jwtSecret, s.jwtIssuer, s.jwtExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
