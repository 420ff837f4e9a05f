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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvc
	userID   string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_StampsOwnerAndAudit() {
	ctx := context.Background()

	var saved domain.Category
	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Category)
		}).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.userID, dto.CreateCategoryRequest{
		Name:         "Food",
		CategoryType: domain.Expense,
	})

	suite.Require().NoError(err)
	suite.NotEmpty(category.CategoryID)
	suite.Equal(suite.userID, saved.UserID)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.Equal(domain.Expense, saved.CategoryType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_PatchesOnlyProvidedFields() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	existing := &domain.Category{
		CategoryID:   categoryID,
		UserID:       suite.userID,
		Name:         "Food",
		CategoryType: domain.Expense,
	}
	suite.mockRepo.On("FindCategoryByID", ctx, categoryID, suite.userID).Return(existing, nil).Once()

	var saved domain.Category
	suite.mockRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Category)
		}).Return(nil).Once()

	newName := "Dining"
	category, err := suite.service.UpdateCategory(ctx, suite.userID, categoryID, dto.UpdateCategoryRequest{
		Name: &newName,
	})

	suite.Require().NoError(err)
	suite.Equal("Dining", category.Name)
	suite.Equal(domain.Expense, saved.CategoryType, "type untouched when not provided")
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_BlockedWhileTransactionsExist() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID, suite.userID).
		Return(&domain.Category{CategoryID: categoryID, UserID: suite.userID}, nil).Once()
	suite.mockRepo.On("CountTransactionsByCategory", ctx, categoryID, suite.userID).
		Return(int64(2), nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, categoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_SucceedsWhenUnused() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID, suite.userID).
		Return(&domain.Category{CategoryID: categoryID, UserID: suite.userID}, nil).Once()
	suite.mockRepo.On("CountTransactionsByCategory", ctx, categoryID, suite.userID).
		Return(int64(0), nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, categoryID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, categoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
