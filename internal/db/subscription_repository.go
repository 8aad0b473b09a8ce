package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"goshopper-backend-go/internal/models"
)

const subscriptionsCollection = "subscriptions"

// firestoreSubscriptionRepository implements SubscriptionRepository using
// Firestore. Document IDs are user UIDs, giving one subscription per user.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new subscription repository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// GetByUserID retrieves the subscription document for a user.
func (r *firestoreSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription for user '%s': %w", userID, err)
	}

	var sub models.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription data for user '%s': %w", userID, err)
	}
	sub.UserID = docSnap.Ref.ID

	return &sub, nil
}

// Create adds a new subscription document keyed by the user's UID.
func (r *firestoreSubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.UserID == "" {
		return errors.New("subscription UserID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(sub.UserID).Create(ctx, sub)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("subscription for user '%s' already exists: %w", sub.UserID, err)
		}
		return fmt.Errorf("failed to create subscription for user '%s': %w", sub.UserID, err)
	}
	return nil
}

// Update overwrites the subscription document. The service layer always
// writes the full model it previously read, so MergeAll is safe here.
func (r *firestoreSubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	if sub.UserID == "" {
		return errors.New("subscription UserID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(sub.UserID).Set(ctx, sub, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update subscription for user '%s': %w", sub.UserID, err)
	}
	return nil
}
