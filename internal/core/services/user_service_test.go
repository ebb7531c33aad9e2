package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/core/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
	"github.com/shopkhata/shopkhata_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	userService  portssvc.UserSvcFacade
	authService  portssvc.AuthSvcFacade
	admin        domain.Actor
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.userService = services.NewUserService(suite.mockUserRepo)
	suite.authService = services.NewAuthService(suite.mockUserRepo, "test-secret", "test-issuer", time.Hour)
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "asha", Password: "s3cret-pass", Role: "MANAGER"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "asha" && u.Role == domain.RoleManager && u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.userService.CreateUser(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPassword("s3cret-pass", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_RequiresAdmin() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "asha", Password: "s3cret-pass", Role: "MANAGER"}

	user, err := suite.userService.CreateUser(ctx, req, domain.Actor{UserID: "u", Role: domain.RoleManager})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "asha", Password: "s3cret-pass", Role: "MANAGER"}

	existing := &domain.User{UserID: uuid.NewString(), Username: "asha"}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(existing, nil).Once()

	user, err := suite.userService.CreateUser(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "asha",
		PasswordHash: hash,
		Role:         domain.RoleManager,
	}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	resp, err := suite.authService.Login(ctx, dto.LoginRequest{Username: "asha", Password: "s3cret-pass"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.WithinDuration(time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Username: "asha", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	resp, err := suite.authService.Login(ctx, dto.LoginRequest{Username: "asha", Password: "wrong"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownUserLooksLikeWrongPassword() {
	// Unknown usernames and wrong passwords must be indistinguishable.
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.authService.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
