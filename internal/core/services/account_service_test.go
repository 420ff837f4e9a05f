package services_test

import (
	"context"
	"testing"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/core/services"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvc
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SeedsCurrentBalanceFromOpening() {
	ctx := context.Background()
	opening := decimal.RequireFromString("250.75")

	var saved domain.Account
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.userID, dto.CreateAccountRequest{
		Name:           "Checking",
		AccountType:    domain.Checking,
		OpeningBalance: opening,
	})

	suite.Require().NoError(err)
	suite.True(account.CurrentBalance.Equal(opening))
	suite.True(saved.CurrentBalance.Equal(opening))
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SurfacesDuplicateName() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.userID, dto.CreateAccountRequest{
		Name:        "Checking",
		AccountType: domain.Checking,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_BalanceOverrideReplacesCurrentBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()

	existing := &domain.Account{
		AccountID:      accountID,
		UserID:         suite.userID,
		Name:           "Checking",
		CurrentBalance: decimal.RequireFromString("100"),
	}
	suite.mockRepo.On("FindAccountByID", ctx, accountID, suite.userID).Return(existing, nil).Once()

	var saved domain.Account
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	override := decimal.RequireFromString("999.99")
	account, err := suite.service.UpdateAccount(ctx, suite.userID, accountID, dto.UpdateAccountRequest{
		BalanceOverride: &override,
	})

	suite.Require().NoError(err)
	suite.True(account.CurrentBalance.Equal(override))
	suite.True(saved.CurrentBalance.Equal(override))
	suite.Equal(suite.userID, saved.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedWhileTransactionsExist() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID, suite.userID).
		Return(&domain.Account{AccountID: accountID, UserID: suite.userID}, nil).Once()
	suite.mockRepo.On("CountTransactionsByAccount", ctx, accountID, suite.userID).
		Return(int64(4), nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SucceedsWhenUnused() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID, suite.userID).
		Return(&domain.Account{AccountID: accountID, UserID: suite.userID}, nil).Once()
	suite.mockRepo.On("CountTransactionsByAccount", ctx, accountID, suite.userID).
		Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, accountID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ForeignAccountLooksAbsent() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
