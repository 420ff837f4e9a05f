package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/core/services"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvc
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo, services.UserServiceConfig{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "finbook-test",
	})
}

func (suite *UserServiceTestSuite) TestRegister_HashesPasswordAndSelfStamps() {
	ctx := context.Background()

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEqual("hunter22", saved.PasswordHash, "password must never be stored in clear")
	suite.True(utils.CheckPasswordHash("hunter22", saved.PasswordHash))
	suite.Equal(saved.UserID, saved.CreatedBy, "new users are their own creator")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_SurfacesDuplicateEmail() {
	ctx := context.Background()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestLogin_IssuesValidToken() {
	ctx := context.Background()

	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "user-1", Email: "alice@example.com", PasswordHash: hash}
	suite.mockRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	token, loggedIn, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})

	suite.Require().NoError(err)
	suite.Equal("user-1", loggedIn.UserID)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("user-1", claims.Subject)
	suite.Equal("finbook-test", claims.Issuer)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPasswordIsUnauthorized() {
	ctx := context.Background()

	hash, err := utils.HashPassword("hunter22")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "user-1", Email: "alice@example.com", PasswordHash: hash}
	suite.mockRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	_, _, err = suite.service.Login(ctx, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmailIndistinguishableFromWrongPassword() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
