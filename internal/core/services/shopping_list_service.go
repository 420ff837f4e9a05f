package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
)

// shoppingListService provides shopping list and item CRUD. Item operations
// resolve the owning list first so ownership is always checked through it.
type shoppingListService struct {
	listRepo portsrepo.ShoppingListRepository
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(listRepo portsrepo.ShoppingListRepository) portssvc.ShoppingListSvc {
	return &shoppingListService{listRepo: listRepo}
}

var _ portssvc.ShoppingListSvc = (*shoppingListService)(nil)

func (s *shoppingListService) CreateList(ctx context.Context, userID string, req dto.CreateShoppingListRequest) (*domain.ShoppingList, error) {
	now := time.Now().UTC()
	list := domain.ShoppingList{
		ListID:      uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.listRepo.SaveList(ctx, list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *shoppingListService) GetListByID(ctx context.Context, userID string, listID string) (*domain.ShoppingList, []domain.ShoppingItem, error) {
	list, err := s.listRepo.FindListByID(ctx, listID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.listRepo.ListItemsByList(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	return list, items, nil
}

func (s *shoppingListService) ListLists(ctx context.Context, userID string) ([]domain.ShoppingList, error) {
	return s.listRepo.ListListsByUser(ctx, userID)
}

func (s *shoppingListService) UpdateList(ctx context.Context, userID string, listID string, req dto.UpdateShoppingListRequest) (*domain.ShoppingList, error) {
	list, err := s.listRepo.FindListByID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Description != nil {
		list.Description = *req.Description
	}
	list.LastUpdatedAt = time.Now().UTC()
	list.LastUpdatedBy = userID

	if err := s.listRepo.UpdateList(ctx, *list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes the list; its items go with it via the store's cascade.
func (s *shoppingListService) DeleteList(ctx context.Context, userID string, listID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.listRepo.FindListByID(ctx, listID, userID); err != nil {
		return err
	}
	if err := s.listRepo.DeleteList(ctx, listID, userID); err != nil {
		logger.Error("Failed to delete shopping list", slog.String("list_id", listID), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *shoppingListService) AddItem(ctx context.Context, userID string, listID string, req dto.CreateShoppingItemRequest) (*domain.ShoppingItem, error) {
	if _, err := s.listRepo.FindListByID(ctx, listID, userID); err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	now := time.Now().UTC()
	item := domain.ShoppingItem{
		ItemID:         uuid.NewString(),
		ListID:         listID,
		Name:           req.Name,
		Quantity:       quantity,
		EstimatedPrice: req.EstimatedPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.listRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, userID string, listID string, itemID string, req dto.UpdateShoppingItemRequest) (*domain.ShoppingItem, error) {
	if _, err := s.listRepo.FindListByID(ctx, listID, userID); err != nil {
		return nil, err
	}
	item, err := s.listRepo.FindItemByID(ctx, itemID, listID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.EstimatedPrice != nil {
		item.EstimatedPrice = *req.EstimatedPrice
	}
	if req.ActualPrice != nil {
		item.ActualPrice = *req.ActualPrice
	}
	if req.Purchased != nil {
		item.Purchased = *req.Purchased
		if item.Purchased && item.PurchaseDate == nil {
			now := time.Now().UTC()
			item.PurchaseDate = &now
		}
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := parseOptionalDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		item.PurchaseDate = purchaseDate
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = userID

	if err := s.listRepo.UpdateItem(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) DeleteItem(ctx context.Context, userID string, listID string, itemID string) error {
	if _, err := s.listRepo.FindListByID(ctx, listID, userID); err != nil {
		return err
	}
	if _, err := s.listRepo.FindItemByID(ctx, itemID, listID); err != nil {
		return err
	}
	return s.listRepo.DeleteItem(ctx, itemID, listID)
}
