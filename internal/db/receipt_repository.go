package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"goshopper-backend-go/internal/models"
)

const receiptsCollection = "receipts"

// firestoreReceiptRepository implements the ReceiptRepository interface using Firestore.
type firestoreReceiptRepository struct {
	client *firestore.Client
}

// NewFirestoreReceiptRepository creates a new instance of firestoreReceiptRepository.
func NewFirestoreReceiptRepository(client *firestore.Client) ReceiptRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ReceiptRepository.")
	}
	return &firestoreReceiptRepository{client: client}
}

// Create adds a new receipt document with an auto-generated ID.
func (r *firestoreReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) (string, error) {
	docRef := r.client.Collection(receiptsCollection).NewDoc()
	receipt.ID = docRef.ID

	_, err := docRef.Create(ctx, receipt)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a receipt document from Firestore by its ID.
func (r *firestoreReceiptRepository) GetByID(ctx context.Context, receiptID string) (*models.Receipt, error) {
	if receiptID == "" {
		return nil, errors.New("receiptID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(receiptsCollection).Doc(receiptID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("receipt with ID '%s' not found: %w", receiptID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get receipt with ID '%s': %w", receiptID, err)
	}

	var receipt models.Receipt
	if err := docSnap.DataTo(&receipt); err != nil {
		return nil, fmt.Errorf("failed to decode receipt data for ID '%s': %w", receiptID, err)
	}
	receipt.ID = docSnap.Ref.ID

	return &receipt, nil
}

// GetByUserID retrieves a user's receipts, most recently scanned first.
// A limit of 0 returns all receipts.
func (r *firestoreReceiptRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*models.Receipt, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserID operation")
	}

	query := r.client.Collection(receiptsCollection).
		Where("userId", "==", userID).
		OrderBy("scannedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return r.collect(ctx, query, userID)
}

// GetByUserIDSince retrieves a user's receipts scanned at or after since,
// for spending statistics.
func (r *firestoreReceiptRepository) GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*models.Receipt, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByUserIDSince operation")
	}

	query := r.client.Collection(receiptsCollection).
		Where("userId", "==", userID).
		Where("scannedAt", ">=", since).
		OrderBy("scannedAt", firestore.Desc)

	return r.collect(ctx, query, userID)
}

func (r *firestoreReceiptRepository) collect(ctx context.Context, query firestore.Query, userID string) ([]*models.Receipt, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var receipts []*models.Receipt
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate receipts for user '%s': %w", userID, err)
		}

		var receipt models.Receipt
		if err := doc.DataTo(&receipt); err != nil {
			// Skip undecodable legacy documents rather than failing the list.
			log.Printf("Error decoding receipt data (ID: %s) for user '%s': %v. Skipping.", doc.Ref.ID, userID, err)
			continue
		}
		receipt.ID = doc.Ref.ID
		receipts = append(receipts, &receipt)
	}

	return receipts, nil
}

// Delete removes a receipt document from Firestore.
func (r *firestoreReceiptRepository) Delete(ctx context.Context, receiptID string) error {
	if receiptID == "" {
		return errors.New("receiptID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(receiptsCollection).Doc(receiptID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("receipt with ID '%s' not found for deletion: %w", receiptID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete receipt with ID '%s': %w", receiptID, err)
	}
	return nil
}

// UpdateCity backfills the city field. Receipts are otherwise immutable, so
// this is a targeted field update rather than a document Set.
func (r *firestoreReceiptRepository) UpdateCity(ctx context.Context, receiptID, city string) error {
	if receiptID == "" {
		return errors.New("receiptID cannot be empty for UpdateCity operation")
	}
	_, err := r.client.Collection(receiptsCollection).Doc(receiptID).Update(ctx, []firestore.Update{
		{Path: "city", Value: city},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("receipt with ID '%s' not found for city update: %w", receiptID, ErrNotFound)
		}
		return fmt.Errorf("failed to update city for receipt '%s': %w", receiptID, err)
	}
	return nil
}
