package models

import "time"

// PaymentStatus is the state of one mobile-money payment attempt. A FAILED
// attempt is terminal; retries create a new Payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// MobileMoneyProvider identifies a DRC mobile-money network.
type MobileMoneyProvider string

const (
	ProviderMPesa    MobileMoneyProvider = "mpesa"    // Vodacom M-Pesa
	ProviderAirtel   MobileMoneyProvider = "airtel"   // Airtel Money
	ProviderOrange   MobileMoneyProvider = "orange"   // Orange Money
	ProviderAfricell MobileMoneyProvider = "africell" // Africell Money
)

// Payment records one subscription payment attempt. PhoneEncrypted holds the
// subscriber number encrypted at rest; the plaintext never reaches Firestore.
type Payment struct {
	ID             string              `json:"id" firestore:"-"` // document ID, uuid
	UserID         string              `json:"userId" firestore:"userId"`
	PlanID         PlanID              `json:"planId" firestore:"planId"`
	Provider       MobileMoneyProvider `json:"provider" firestore:"provider"`
	PhoneEncrypted string              `json:"-" firestore:"phoneEncrypted"`
	Amount         float64             `json:"amount" firestore:"amount"`
	Currency       string              `json:"currency" firestore:"currency"`
	Status         PaymentStatus       `json:"status" firestore:"status"`
	GatewayRef     string              `json:"gatewayRef,omitempty" firestore:"gatewayRef,omitempty"`
	FailureReason  string              `json:"failureReason,omitempty" firestore:"failureReason,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time           `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
