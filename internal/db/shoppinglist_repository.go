package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"goshopper-backend-go/internal/models"
)

const shoppingListsCollection = "shopping_lists"

// firestoreShoppingListRepository implements ShoppingListRepository using Firestore.
type firestoreShoppingListRepository struct {
	client *firestore.Client
}

// NewFirestoreShoppingListRepository creates a new shopping list repository.
func NewFirestoreShoppingListRepository(client *firestore.Client) ShoppingListRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ShoppingListRepository.")
	}
	return &firestoreShoppingListRepository{client: client}
}

// Create adds a new shopping list document with an auto-generated ID.
func (r *firestoreShoppingListRepository) Create(ctx context.Context, list *models.ShoppingList) (string, error) {
	docRef := r.client.Collection(shoppingListsCollection).NewDoc()
	list.ID = docRef.ID

	_, err := docRef.Create(ctx, list)
	if err != nil {
		return "", fmt.Errorf("failed to create shopping list: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a shopping list document by its ID.
func (r *firestoreShoppingListRepository) GetByID(ctx context.Context, listID string) (*models.ShoppingList, error) {
	if listID == "" {
		return nil, errors.New("listID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(shoppingListsCollection).Doc(listID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("shopping list with ID '%s' not found: %w", listID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shopping list with ID '%s': %w", listID, err)
	}

	var list models.ShoppingList
	if err := docSnap.DataTo(&list); err != nil {
		return nil, fmt.Errorf("failed to decode shopping list data for ID '%s': %w", listID, err)
	}
	list.ID = docSnap.Ref.ID

	return &list, nil
}

// GetByOwnerID retrieves all shopping lists owned by a user, newest first.
func (r *firestoreShoppingListRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*models.ShoppingList, error) {
	if ownerID == "" {
		return nil, errors.New("ownerID cannot be empty for GetByOwnerID operation")
	}

	iter := r.client.Collection(shoppingListsCollection).
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var lists []*models.ShoppingList
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate shopping lists for owner '%s': %w", ownerID, err)
		}

		var list models.ShoppingList
		if err := doc.DataTo(&list); err != nil {
			log.Printf("Error decoding shopping list (ID: %s) for owner '%s': %v. Skipping.", doc.Ref.ID, ownerID, err)
			continue
		}
		list.ID = doc.Ref.ID
		lists = append(lists, &list)
	}

	return lists, nil
}

// CountByOwnerID counts a user's shopping lists for plan-limit checks.
// Counts are tiny (freemium caps at one), so iterating is fine.
func (r *firestoreShoppingListRepository) CountByOwnerID(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, errors.New("ownerID cannot be empty for CountByOwnerID operation")
	}

	iter := r.client.Collection(shoppingListsCollection).
		Where("ownerId", "==", ownerID).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count shopping lists for owner '%s': %w", ownerID, err)
		}
		count++
	}
	return count, nil
}

// Update overwrites a shopping list document.
func (r *firestoreShoppingListRepository) Update(ctx context.Context, list *models.ShoppingList) error {
	if list.ID == "" {
		return errors.New("list ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(shoppingListsCollection).Doc(list.ID).Set(ctx, list, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update shopping list with ID '%s': %w", list.ID, err)
	}
	return nil
}

// Delete removes a shopping list document.
func (r *firestoreShoppingListRepository) Delete(ctx context.Context, listID string) error {
	if listID == "" {
		return errors.New("listID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(shoppingListsCollection).Doc(listID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("shopping list with ID '%s' not found for deletion: %w", listID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete shopping list with ID '%s': %w", listID, err)
	}
	return nil
}
