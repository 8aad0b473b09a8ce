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

const paymentsCollection = "payments"

// firestorePaymentRepository implements PaymentRepository using Firestore.
type firestorePaymentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentRepository creates a new payment repository.
func NewFirestorePaymentRepository(client *firestore.Client) PaymentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PaymentRepository.")
	}
	return &firestorePaymentRepository{client: client}
}

// Create adds a new payment document. The service supplies the ID (a uuid)
// up front so the gateway callback can reference it.
func (r *firestorePaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		return errors.New("payment ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(paymentsCollection).Doc(payment.ID).Create(ctx, payment)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("payment with ID '%s' already exists: %w", payment.ID, err)
		}
		return fmt.Errorf("failed to create payment with ID '%s': %w", payment.ID, err)
	}
	return nil
}

// GetByID retrieves a payment document by its ID.
func (r *firestorePaymentRepository) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, errors.New("paymentID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(paymentsCollection).Doc(paymentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment with ID '%s' not found: %w", paymentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment with ID '%s': %w", paymentID, err)
	}

	var payment models.Payment
	if err := docSnap.DataTo(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment data for ID '%s': %w", paymentID, err)
	}
	payment.ID = docSnap.Ref.ID

	return &payment, nil
}

// Update overwrites a payment document.
func (r *firestorePaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		return errors.New("payment ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(paymentsCollection).Doc(payment.ID).Set(ctx, payment, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update payment with ID '%s': %w", payment.ID, err)
	}
	return nil
}
