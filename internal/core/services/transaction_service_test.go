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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvc
	agenda           portssvc.TransactionSvc
	userID           string
	accountID        string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
	suite.agenda = services.NewAgendaService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) expectAccountExists() {
	account := &domain.Account{AccountID: suite.accountID, UserID: suite.userID, Name: "Checking"}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID, suite.userID).Return(account, nil)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PostsImmediately() {
	ctx := context.Background()
	suite.expectAccountExists()

	var captured map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("120.50"),
		Type:        domain.Expense,
		Date:        "2026-03-14",
		AccountID:   suite.accountID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.StatusPending, txn.Status, "omitted status stays pending")
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.True(captured[suite.accountID].Equal(decimal.RequireFromString("-120.50")), "pending rows still post on the immediate flow")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AgendaPendingDoesNotPost() {
	ctx := context.Background()
	suite.expectAccountExists()

	var captured map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := suite.agenda.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Rent",
		Amount:      decimal.RequireFromString("1500"),
		Type:        domain.Expense,
		Date:        "2026-04-01",
		DueDate:     "2026-04-05",
		AccountID:   suite.accountID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Empty(captured, "pending entries must not touch balances")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNegativeAmount() {
	ctx := context.Background()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Bad",
		Amount:      decimal.RequireFromString("-5"),
		Type:        domain.Expense,
		Date:        "2026-03-14",
		AccountID:   suite.accountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmountOnlyAllowedImmediate() {
	ctx := context.Background()
	suite.expectAccountExists()

	// Immediate flow accepts a zero amount.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil).Once()
	_, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Placeholder",
		Amount:      decimal.Zero,
		Type:        domain.Expense,
		Date:        "2026-03-14",
		AccountID:   suite.accountID,
	})
	suite.Require().NoError(err)

	// Agenda flow rejects it.
	_, err = suite.agenda.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Placeholder",
		Amount:      decimal.Zero,
		Type:        domain.Expense,
		Date:        "2026-03-14",
		AccountID:   suite.accountID,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsUnknownAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description: "Orphan",
		Amount:      decimal.RequireFromString("10"),
		Type:        domain.Expense,
		Date:        "2026-03-14",
		AccountID:   suite.accountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNestedInstallmentParent() {
	ctx := context.Background()
	suite.expectAccountExists()

	parentID := uuid.NewString()
	grandparentID := uuid.NewString()
	parent := &domain.Transaction{
		TransactionID:       parentID,
		UserID:              suite.userID,
		ParentTransactionID: grandparentID, // already a child
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, parentID, suite.userID).Return(parent, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, dto.CreateTransactionRequest{
		Description:         "Installment 2/12",
		Amount:              decimal.RequireFromString("100"),
		Type:                domain.Expense,
		Date:                "2026-03-14",
		AccountID:           suite.accountID,
		IsInstallment:       true,
		ParentTransactionID: parentID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountEditRebalances() {
	ctx := context.Background()
	suite.expectAccountExists()

	txnID := uuid.NewString()
	old := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Description:   "Dinner",
		Amount:        decimal.RequireFromString("100"),
		Type:          domain.Expense,
		Status:        domain.StatusPaid,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID, suite.userID).Return(old, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	newAmount := decimal.RequireFromString("40")
	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	// -100 reversed, -40 applied: net +60 back to the account.
	suite.True(captured[suite.accountID].Equal(decimal.RequireFromString("60")))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AgendaSettlementPostsEffect() {
	ctx := context.Background()
	suite.expectAccountExists()

	txnID := uuid.NewString()
	old := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Description:   "Rent",
		Amount:        decimal.RequireFromString("1500"),
		Type:          domain.Expense,
		Status:        domain.StatusPending,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID, suite.userID).Return(old, nil).Once()

	var captured map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	paid := domain.StatusPaid
	_, err := suite.agenda.UpdateTransaction(ctx, suite.userID, txnID, dto.UpdateTransactionRequest{
		Status: &paid,
	})

	suite.Require().NoError(err)
	suite.True(captured[suite.accountID].Equal(decimal.RequireFromString("-1500")))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RejectsUnknownStatus() {
	ctx := context.Background()

	txnID := uuid.NewString()
	old := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Amount:        decimal.RequireFromString("10"),
		Type:          domain.Expense,
		Status:        domain.StatusPaid,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID, suite.userID).Return(old, nil).Once()

	bogus := domain.TransactionStatus("SETTLEDISH")
	_, err := suite.service.UpdateTransaction(ctx, suite.userID, txnID, dto.UpdateTransactionRequest{
		Status: &bogus,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesEffect() {
	ctx := context.Background()

	txnID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     suite.accountID,
		Amount:        decimal.RequireFromString("200"),
		Type:          domain.Income,
		Status:        domain.StatusReceived,
	}
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID, suite.userID).Return(txn, nil).Once()

	var captured map[string]decimal.Decimal
	var stampedAt time.Time
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, suite.userID, mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).(map[string]decimal.Decimal)
			stampedAt = args.Get(4).(time.Time)
		}).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	suite.Require().NoError(err)
	suite.True(captured[suite.accountID].Equal(decimal.RequireFromString("-200")))
	suite.False(stampedAt.IsZero())
	suite.Equal(time.UTC, stampedAt.Location())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFoundForForeignOwner() {
	ctx := context.Background()

	txnID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, txnID, suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_AgendaOrdersByDueDate() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, false).Return([]domain.Transaction{}, nil).Once()
	_, err := suite.service.ListTransactions(ctx, suite.userID)
	suite.Require().NoError(err)

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, true).Return([]domain.Transaction{}, nil).Once()
	_, err = suite.agenda.ListTransactions(ctx, suite.userID)
	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAccountNames_ResolvesThroughRepo() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, []string{suite.accountID}).
		Return(map[string]domain.Account{
			suite.accountID: {AccountID: suite.accountID, Name: "Wallet"},
		}, nil).Once()

	names, err := suite.service.AccountNames(ctx, suite.userID, []string{suite.accountID})

	suite.Require().NoError(err)
	suite.Equal("Wallet", names[suite.accountID])
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
