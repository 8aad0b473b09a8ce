package core

import (
	"context"
	"time"

	"goshopper-backend-go/internal/models"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it creates a new one
	// with default values and provisions the trial subscription.
	GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// SubscriptionService defines the interface for subscription lifecycle operations.
type SubscriptionService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Subscription, error)
	GetState(ctx context.Context, userID string) (*models.Subscription, *models.SubscriptionState, error)
	RecordScan(ctx context.Context, userID string) (*models.SubscriptionState, error)
	ActivatePlan(ctx context.Context, userID string, planID models.PlanID, amount float64, currency string) (*models.Subscription, error)
}

// ReceiptService defines the interface for receipt operations.
type ReceiptService interface {
	Create(ctx context.Context, userID string, req models.CreateReceiptRequest) (*models.Receipt, error)
	GetByID(ctx context.Context, userID, receiptID string) (*models.Receipt, error)
	List(ctx context.Context, userID string, limit int) ([]*models.Receipt, error)
	Delete(ctx context.Context, userID, receiptID string) error
	UpdateCity(ctx context.Context, userID, receiptID, city string) error
	SpendingStats(ctx context.Context, userID string, since time.Time) (*models.SpendingStats, error)
}

// PriceCompareService defines the interface for the price comparison report.
type PriceCompareService interface {
	GetComparison(ctx context.Context, userID, receiptID string) (*models.ComparisonReport, error)
}

// ShoppingListService defines the interface for shopping list operations.
type ShoppingListService interface {
	Create(ctx context.Context, userID string, req models.CreateShoppingListRequest) (*models.ShoppingList, error)
	GetByID(ctx context.Context, userID, listID string) (*models.ShoppingList, error)
	List(ctx context.Context, userID string) ([]*models.ShoppingList, error)
	Update(ctx context.Context, userID, listID string, req models.UpdateShoppingListRequest) (*models.ShoppingList, error)
	Delete(ctx context.Context, userID, listID string) error
}

// PaymentService defines the interface for mobile-money payment operations.
type PaymentService interface {
	InitiatePayment(ctx context.Context, userID string, req models.InitiatePaymentRequest) (*models.Payment, error)
	HandleWebhook(ctx context.Context, signature string, body []byte, req models.PaymentWebhookRequest) error
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}

// EncryptionService defines the interface for cryptographic operations.
type EncryptionService interface {
	Encrypt(plainText string, key []byte) (string, error)
	Decrypt(cipherTextBase64 string, key []byte) (string, error)
}
