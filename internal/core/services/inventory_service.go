package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
)

type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository) portssvc.InventorySvc {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventorySvc = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, userID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	neededBy, err := parseOptionalDate(req.NeededBy)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    quantity,
		Unit:        req.Unit,
		Priority:    req.Priority,
		ListType:    req.ListType,
		NeededBy:    neededBy,
		TargetValue: req.TargetValue,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, userID string, itemID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByID(ctx, itemID, userID)
}

func (s *inventoryService) ListItems(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.inventoryRepo.ListItemsByUser(ctx, userID)
}

func (s *inventoryService) UpdateItem(ctx context.Context, userID string, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.ListType != nil {
		item.ListType = *req.ListType
	}
	if req.NeededBy != nil {
		neededBy, err := parseOptionalDate(*req.NeededBy)
		if err != nil {
			return nil, err
		}
		item.NeededBy = neededBy
	}
	if req.TargetValue != nil {
		item.TargetValue = *req.TargetValue
	}
	if req.Purchased != nil {
		item.Purchased = *req.Purchased
	}
	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = userID

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, userID string, itemID string) error {
	if _, err := s.inventoryRepo.FindItemByID(ctx, itemID, userID); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteItem(ctx, itemID, userID)
}
