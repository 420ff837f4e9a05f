package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}
func (m *MockTransactionService) ListChildTransactions(ctx context.Context, userID string, transactionID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) AccountNames(ctx context.Context, userID string, accountIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
func (m *MockTransactionService) ImportCSV(ctx context.Context, userID string, r io.Reader) (*dto.ImportResult, error) {
	args := m.Called(ctx, userID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResult), args.Error(1)
}
func (m *MockTransactionService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	args := m.Called(ctx, userID, w)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvc = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
	userID      string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finbook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerTransactionRoutes(v1, suite.mockService)
}

func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body io.Reader) *http.Request {
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	return req
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	txnID := uuid.NewString()
	accountID := uuid.NewString()
	expected := &domain.Transaction{
		TransactionID: txnID,
		UserID:        suite.userID,
		AccountID:     accountID,
		Description:   "Groceries",
		Amount:        decimal.RequireFromString("120.50"),
		Type:          domain.Expense,
		Status:        domain.StatusPaid,
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	suite.mockService.On("CreateTransaction",
		mock.Anything,
		suite.userID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Description == "Groceries" && req.AccountID == accountID
		}),
	).Return(expected, nil).Once()

	body := fmt.Sprintf(`{"description":"Groceries","amount":"120.50","type":"EXPENSE","date":"2026-03-14","accountID":%q}`, accountID)
	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txnID, resp.TransactionID)
	suite.Equal("2026-03-14", resp.Date)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockService.On("GetTransactionByID", mock.Anything, suite.userID, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/transactions/"+txnID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_MissingTokenRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) importRequest(csvBody string) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "transactions.csv")
	if err != nil {
		suite.FailNow("Failed to build multipart body", err.Error())
	}
	if _, err := part.Write([]byte(csvBody)); err != nil {
		suite.FailNow("Failed to write CSV part", err.Error())
	}
	writer.Close()

	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_RowErrorsReturn422() {
	result := &dto.ImportResult{
		Imported: 1,
		Errors:   []dto.ImportRowError{{Row: 3, Message: `invalid amount "oops"`}},
	}
	suite.mockService.On("ImportCSV", mock.Anything, suite.userID, mock.Anything).
		Return(result, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.importRequest("Description,Amount\nGroceries,oops\n"))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp dto.ImportResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Errors, 1)
	suite.Equal(3, resp.Errors[0].Row)
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_CleanFileReturns200() {
	result := &dto.ImportResult{Imported: 2}
	suite.mockService.On("ImportCSV", mock.Anything, suite.userID, mock.Anything).
		Return(result, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.importRequest("Description,Amount\nGroceries,10.00\nCoffee,4.50\n"))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ImportResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Imported)
	suite.Empty(resp.Errors)
}

func (suite *TransactionHandlerTestSuite) TestImportTransactions_MissingFileReturns400() {
	req := suite.authedRequest(http.MethodPost, "/api/v1/transactions/import", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ImportCSV", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestExportTransactions_SetsCSVHeaders() {
	suite.mockService.On("ExportCSV", mock.Anything, suite.userID, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(2).(io.Writer)
			w.Write([]byte("Description,Amount\nGroceries,120.50\n"))
		}).Return(nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/transactions/export", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "transactions.csv")
	suite.Contains(w.Body.String(), "Groceries")
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NoContent() {
	txnID := uuid.NewString()
	suite.mockService.On("DeleteTransaction", mock.Anything, suite.userID, txnID).Return(nil).Once()

	req := suite.authedRequest(http.MethodDelete, "/api/v1/transactions/"+txnID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
