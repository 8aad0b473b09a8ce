package models

import "time"

// User represents a user profile in the system.
type User struct {
	ID                string    `json:"id" firestore:"-"` // Firebase Auth UID, will be the document ID
	Email             string    `json:"email"`
	DisplayName       string    `json:"displayName,omitempty"`
	PhotoURL          string    `json:"photoURL,omitempty"`
	City              string    `json:"city,omitempty"` // default city for receipts and price comparisons
	PreferredCurrency string    `json:"preferredCurrency,omitempty"`
	CreatedAt         time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt         time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
