package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/entitlements"
	"goshopper-backend-go/internal/models"
)

// Sentinel errors for shopping list operations.
var (
	ErrListNotFound = errors.New("shopping list not found")
	// ErrListLimitReached carries the upgrade reason in the wrapping error text.
	ErrListLimitReached = errors.New("shopping list limit reached")
)

// shoppingListService implements the ShoppingListService interface.
type shoppingListService struct {
	listRepo db.ShoppingListRepository
	subSvc   SubscriptionService
	auditSvc AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// NewShoppingListService creates a new ShoppingListService instance.
func NewShoppingListService(listRepo db.ShoppingListRepository, subSvc SubscriptionService, auditSvc AuditService, logger *zap.Logger) ShoppingListService {
	return &shoppingListService{
		listRepo: listRepo,
		subSvc:   subSvc,
		auditSvc: auditSvc,
		logger:   logger,
		now:      time.Now,
	}
}

// Create creates a new shopping list after applying the plan gate. An active
// trial bypasses the cap; freemium accounts are limited to one list.
func (s *shoppingListService) Create(ctx context.Context, userID string, req models.CreateShoppingListRequest) (*models.ShoppingList, error) {
	sub, err := s.subSvc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !entitlements.HasAccess(entitlements.FeatureShoppingLists, sub, s.now().UTC()) {
		count, countErr := s.listRepo.CountByOwnerID(ctx, userID)
		if countErr != nil {
			return nil, fmt.Errorf("failed to count shopping lists for %s: %w", userID, countErr)
		}
		if gate := entitlements.CanCreateShoppingList(sub, count); !gate.CanCreate {
			return nil, fmt.Errorf("%w: %s", ErrListLimitReached, gate.Reason)
		}
	}

	items := req.Items
	if items == nil {
		items = []models.ShoppingListItem{}
	}
	list := &models.ShoppingList{
		OwnerID: userID,
		Name:    req.Name,
		Items:   items,
	}
	listID, err := s.listRepo.Create(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	list.ID = listID

	if s.auditSvc != nil {
		auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     models.AuditListCreate,
			TargetType: "LIST",
			TargetID:   listID,
			Details:    map[string]interface{}{"name": list.Name},
		})
		if auditErr != nil {
			s.logger.Warn("failed to write audit log for list creation", zap.Error(auditErr))
		}
	}

	return list, nil
}

// GetByID retrieves a shopping list, enforcing ownership.
func (s *shoppingListService) GetByID(ctx context.Context, userID, listID string) (*models.ShoppingList, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, listID)
		}
		return nil, fmt.Errorf("failed to get shopping list %s: %w", listID, err)
	}
	if list.OwnerID != userID {
		return nil, ErrForbidden
	}
	return list, nil
}

// List returns all of the user's shopping lists.
func (s *shoppingListService) List(ctx context.Context, userID string) ([]*models.ShoppingList, error) {
	lists, err := s.listRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists for %s: %w", userID, err)
	}
	return lists, nil
}

// Update applies a partial update, covering renames and item check/uncheck.
func (s *shoppingListService) Update(ctx context.Context, userID, listID string, req models.UpdateShoppingListRequest) (*models.ShoppingList, error) {
	list, err := s.GetByID(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Items != nil {
		list.Items = *req.Items
	}
	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update shopping list %s: %w", listID, err)
	}
	return list, nil
}

// Delete removes a shopping list after an ownership check.
func (s *shoppingListService) Delete(ctx context.Context, userID, listID string) error {
	if _, err := s.GetByID(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return fmt.Errorf("failed to delete shopping list %s: %w", listID, err)
	}
	return nil
}
