package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/core/services"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const csvHeader = "Description,Amount,Date,Type,Account Name,Category Name,Status"

func stagingMaps() (map[string]string, map[string]string) {
	accounts := map[string]string{"Checking": "acc-1", "Savings": "acc-2"}
	categories := map[string]string{"Food": "cat-1"}
	return accounts, categories
}

func TestStageCSVTransactions_StagesValidRows(t *testing.T) {
	accounts, categories := stagingMaps()
	input := csvHeader + "\n" +
		"Groceries,120.50,2026-03-14,expense,Checking,Food,PAID\n" +
		"Salary,3000.00,2026-03-01,income,Checking,,RECEIVED\n"

	now := time.Now().UTC()
	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, now)

	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, staged, 2)
	assert.Equal(t, "Groceries", staged[0].Description)
	assert.Equal(t, "acc-1", staged[0].AccountID)
	assert.Equal(t, "cat-1", staged[0].CategoryID)
	assert.Equal(t, domain.Expense, staged[0].Type)
	assert.True(t, staged[0].Amount.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, domain.Income, staged[1].Type)
	assert.Empty(t, staged[1].CategoryID)
}

func TestStageCSVTransactions_ReportsRowNumberOfBadRow(t *testing.T) {
	accounts, categories := stagingMaps()
	input := csvHeader + "\n" +
		"Groceries,120.50,2026-03-14,expense,Checking,Food,PAID\n" +
		"Broken,not-a-number,2026-03-15,expense,Checking,,PAID\n" +
		"Coffee,4.50,2026-03-16,expense,Checking,,PAID\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.Len(t, staged, 2, "good rows around the bad one still stage")
	require.Len(t, rowErrors, 1)
	// Header is row 1, so the second data row is row 3.
	assert.Equal(t, 3, rowErrors[0].Row)
	assert.Contains(t, rowErrors[0].Message, "invalid amount")
}

func TestStageCSVTransactions_AcceptsCommaDecimalSeparator(t *testing.T) {
	accounts, categories := stagingMaps()
	input := csvHeader + "\n" +
		"Utilities,\"89,90\",2026-03-20,expense,Checking,,PAID\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, staged, 1)
	assert.True(t, staged[0].Amount.Equal(decimal.RequireFromString("89.90")))
}

func TestStageCSVTransactions_UnknownAccountIsRowError(t *testing.T) {
	accounts, categories := stagingMaps()
	input := csvHeader + "\n" +
		"Groceries,10.00,2026-03-14,expense,Nonexistent,,PAID\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, staged)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0].Message, `unknown account "Nonexistent"`)
}

func TestStageCSVTransactions_MissingRequiredColumnFailsWholeFile(t *testing.T) {
	accounts, categories := stagingMaps()
	input := "Description,Date,Type,Account Name\n" +
		"Groceries,2026-03-14,expense,Checking\n"

	_, _, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, time.Now().UTC())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), `"Amount"`)
}

func TestStageCSVTransactions_EmptyStatusDefaultsToPending(t *testing.T) {
	accounts, categories := stagingMaps()
	input := csvHeader + "\n" +
		"Groceries,10.00,2026-03-14,expense,Checking,,\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, staged, 1)
	assert.Equal(t, domain.StatusPending, staged[0].Status)
}

const csvHeaderWithParent = "Description,Amount,Date,Type,Account Name,Parent Transaction ID"

func TestStageCSVTransactions_ResolvesParentAgainstKnownTransactions(t *testing.T) {
	accounts, categories := stagingMaps()
	parents := map[string]bool{"parent-1": true}
	input := csvHeaderWithParent + "\n" +
		"Installment 2/12,100.00,2026-04-14,expense,Checking,parent-1\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, parents, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, staged, 1)
	assert.Equal(t, "parent-1", staged[0].ParentTransactionID)
}

func TestStageCSVTransactions_UnknownParentIsRowError(t *testing.T) {
	accounts, categories := stagingMaps()
	// The parent map only ever holds the importing user's transactions, so a
	// foreign-owned parent ID looks exactly like a nonexistent one.
	input := csvHeaderWithParent + "\n" +
		"Installment 2/12,100.00,2026-04-14,expense,Checking,some-other-users-txn\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, map[string]bool{}, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, staged)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0].Message, `unknown parent transaction "some-other-users-txn"`)
}

func TestStageCSVTransactions_NestedParentIsRowError(t *testing.T) {
	accounts, categories := stagingMaps()
	parents := map[string]bool{"child-1": false}
	input := csvHeaderWithParent + "\n" +
		"Installment 3/12,100.00,2026-05-14,expense,Checking,child-1\n"

	staged, rowErrors, err := services.StageCSVTransactions(strings.NewReader(input), "user-1", accounts, categories, parents, time.Now().UTC())

	require.NoError(t, err)
	assert.Empty(t, staged)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0].Message, "is itself an installment child")
}

type ImportCSVTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvc
	userID           string
}

func (suite *ImportCSVTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
	suite.userID = uuid.NewString()

	suite.mockAccountRepo.On("ListAccountsByUser", mock.Anything, suite.userID).Return([]domain.Account{
		{AccountID: "acc-1", UserID: suite.userID, Name: "Checking"},
	}, nil)
	suite.mockCategoryRepo.On("ListCategoriesByUser", mock.Anything, suite.userID).Return([]domain.Category{
		{CategoryID: "cat-1", UserID: suite.userID, Name: "Food"},
	}, nil)
	suite.mockTxnRepo.On("ListTransactionsByUser", mock.Anything, suite.userID, false).
		Return([]domain.Transaction{}, nil)
}

func (suite *ImportCSVTestSuite) TestImportCSV_CommitsCleanFileWithNetDeltas() {
	ctx := context.Background()
	input := csvHeader + "\n" +
		"Groceries,100.00,2026-03-14,expense,Checking,Food,PAID\n" +
		"Salary,3000.00,2026-03-01,income,Checking,,RECEIVED\n"

	var captured map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	result, err := suite.service.ImportCSV(ctx, suite.userID, strings.NewReader(input))

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.Empty(result.Errors)
	suite.True(captured["acc-1"].Equal(decimal.RequireFromString("2900")), "deltas net across the batch")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ImportCSVTestSuite) TestImportCSV_AnyBadRowAbortsWholeBatch() {
	ctx := context.Background()
	input := csvHeader + "\n" +
		"Groceries,100.00,2026-03-14,expense,Checking,Food,PAID\n" +
		"Broken,oops,2026-03-15,expense,Checking,,PAID\n"

	result, err := suite.service.ImportCSV(ctx, suite.userID, strings.NewReader(input))

	suite.Require().NoError(err)
	suite.Require().Len(result.Errors, 1)
	suite.Equal(3, result.Errors[0].Row)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ImportCSVTestSuite) TestImportCSV_ForeignParentRejectsRow() {
	ctx := context.Background()
	// The repo only returns this user's transactions, so a row pointing at
	// another owner's transaction fails staging and nothing is written.
	input := csvHeaderWithParent + "\n" +
		"Installment 2/12,100.00,2026-04-14,expense,Checking,some-other-users-txn\n"

	result, err := suite.service.ImportCSV(ctx, suite.userID, strings.NewReader(input))

	suite.Require().NoError(err)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0].Message, "unknown parent transaction")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ImportCSVTestSuite) TestImportCSV_EmptyFileWritesNothing() {
	ctx := context.Background()

	result, err := suite.service.ImportCSV(ctx, suite.userID, strings.NewReader(csvHeader+"\n"))

	suite.Require().NoError(err)
	suite.Equal(0, result.Imported)
	suite.Empty(result.Errors)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportCSVTestSuite(t *testing.T) {
	suite.Run(t, new(ImportCSVTestSuite))
}
