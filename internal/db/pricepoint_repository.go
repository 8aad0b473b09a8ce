package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"goshopper-backend-go/internal/models"
)

const pricePointsCollection = "price_points"

// Firestore caps "in" queries at 30 values per filter.
const maxInClauseValues = 30

// firestorePricePointRepository implements PricePointRepository using Firestore.
type firestorePricePointRepository struct {
	client *firestore.Client
}

// NewFirestorePricePointRepository creates a new price point repository.
func NewFirestorePricePointRepository(client *firestore.Client) PricePointRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PricePointRepository.")
	}
	return &firestorePricePointRepository{client: client}
}

// CreateBatch writes a set of price observations in one batched write.
// Observations come from a single receipt, so the batch stays well under
// Firestore's 500-write ceiling.
func (r *firestorePricePointRepository) CreateBatch(ctx context.Context, points []*models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, p := range points {
		docRef := r.client.Collection(pricePointsCollection).NewDoc()
		p.ID = docRef.ID
		batch.Create(docRef, p)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to write %d price points: %w", len(points), err)
	}
	return nil
}

// GetByProducts returns all observations for the given normalized product
// names, chunking the query to stay within Firestore's "in" clause limit.
func (r *firestorePricePointRepository) GetByProducts(ctx context.Context, normalizedNames []string) ([]*models.PricePoint, error) {
	if len(normalizedNames) == 0 {
		return nil, errors.New("normalizedNames cannot be empty for GetByProducts operation")
	}

	var points []*models.PricePoint
	for start := 0; start < len(normalizedNames); start += maxInClauseValues {
		end := start + maxInClauseValues
		if end > len(normalizedNames) {
			end = len(normalizedNames)
		}
		chunk := normalizedNames[start:end]

		iter := r.client.Collection(pricePointsCollection).
			Where("normalizedName", "in", chunk).
			OrderBy("observedAt", firestore.Desc).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, fmt.Errorf("failed to iterate price points: %w", err)
			}

			var p models.PricePoint
			if err := doc.DataTo(&p); err != nil {
				log.Printf("Error decoding price point (ID: %s): %v. Skipping.", doc.Ref.ID, err)
				continue
			}
			p.ID = doc.Ref.ID
			points = append(points, &p)
		}
		iter.Stop()
	}

	return points, nil
}
