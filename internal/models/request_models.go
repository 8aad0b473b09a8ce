package models

import "time"

// CreateReceiptRequest represents the request body for recording a scanned
// receipt. Items arrive already OCR-parsed; the backend normalizes names,
// meters the scan and records price points.
type CreateReceiptRequest struct {
	Store     string        `json:"store" binding:"required"`
	City      string        `json:"city,omitempty"`
	Items     []ReceiptItem `json:"items" binding:"required,min=1,dive"`
	Total     float64       `json:"total,omitempty"`
	Currency  string        `json:"currency" binding:"required"`
	ScannedAt *time.Time    `json:"scannedAt,omitempty"`
}

// UpdateReceiptCityRequest backfills the city on a receipt. This is the only
// permitted mutation of a written receipt.
type UpdateReceiptCityRequest struct {
	City string `json:"city" binding:"required"`
}

// CreateShoppingListRequest represents the request body for creating a list.
type CreateShoppingListRequest struct {
	Name  string             `json:"name" binding:"required"`
	Items []ShoppingListItem `json:"items,omitempty"`
}

// UpdateShoppingListRequest represents the request body for updating a list.
// Pointers distinguish fields omitted from fields set to their zero value.
type UpdateShoppingListRequest struct {
	Name  *string             `json:"name,omitempty"`
	Items *[]ShoppingListItem `json:"items,omitempty"`
}

// InitiatePaymentRequest starts a mobile-money payment for a plan.
type InitiatePaymentRequest struct {
	PlanID      PlanID `json:"planId" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Currency    string `json:"currency,omitempty"` // USD or CDF, defaults to USD
}

// PaymentWebhookRequest is the gateway's status callback payload.
type PaymentWebhookRequest struct {
	PaymentID  string        `json:"paymentId" binding:"required"`
	GatewayRef string        `json:"gatewayRef,omitempty"`
	Status     PaymentStatus `json:"status" binding:"required"`
	Reason     string        `json:"reason,omitempty"`
}
