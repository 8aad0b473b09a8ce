package db

import (
	"context"
	"time"

	"goshopper-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// SubscriptionRepository stores the per-user subscription document. The
// document ID is the user's Firebase Auth UID, so there is at most one
// subscription per user.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Update(ctx context.Context, sub *models.Subscription) error
}

// ReceiptRepository defines the interface for receipt storage operations.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) (string, error) // returns new receipt ID
	GetByID(ctx context.Context, receiptID string) (*models.Receipt, error)
	GetByUserID(ctx context.Context, userID string, limit int) ([]*models.Receipt, error)
	GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*models.Receipt, error)
	Delete(ctx context.Context, receiptID string) error
	// UpdateCity is the only permitted mutation of a written receipt.
	UpdateCity(ctx context.Context, receiptID, city string) error
}

// PricePointRepository stores community price observations.
type PricePointRepository interface {
	CreateBatch(ctx context.Context, points []*models.PricePoint) error
	// GetByProducts returns observations for any of the given normalized
	// product names, most recent first.
	GetByProducts(ctx context.Context, normalizedNames []string) ([]*models.PricePoint, error)
}

// ShoppingListRepository defines the interface for shopping list storage.
type ShoppingListRepository interface {
	Create(ctx context.Context, list *models.ShoppingList) (string, error)
	GetByID(ctx context.Context, listID string) (*models.ShoppingList, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*models.ShoppingList, error)
	CountByOwnerID(ctx context.Context, ownerID string) (int, error) // for plan limits
	Update(ctx context.Context, list *models.ShoppingList) error
	Delete(ctx context.Context, listID string) error
}

// PaymentRepository stores mobile-money payment attempts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, paymentID string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// AuditRepository defines the interface for audit log data storage operations.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}
