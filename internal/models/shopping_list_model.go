package models

import "time"

// ShoppingListItem is one entry on a shopping list.
type ShoppingListItem struct {
	Name           string  `json:"name" firestore:"name"`
	Quantity       float64 `json:"quantity,omitempty" firestore:"quantity,omitempty"`
	Checked        bool    `json:"checked" firestore:"checked"`
	EstimatedPrice float64 `json:"estimatedPrice,omitempty" firestore:"estimatedPrice,omitempty"`
}

// ShoppingList is a user-owned shopping list. Freemium accounts are capped at
// one list (see entitlements.CanCreateShoppingList).
type ShoppingList struct {
	ID        string             `json:"id" firestore:"-"` // document ID, auto-generated
	OwnerID   string             `json:"ownerId" firestore:"ownerId"`
	Name      string             `json:"name" firestore:"name"`
	Items     []ShoppingListItem `json:"items" firestore:"items"`
	CreatedAt time.Time          `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time          `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
