package models

import "time"

// ReceiptItem is one OCR-extracted line item on a receipt.
type ReceiptItem struct {
	Name           string  `json:"name" firestore:"name"`
	NormalizedName string  `json:"normalizedName,omitempty" firestore:"normalizedName,omitempty"`
	Quantity       float64 `json:"quantity" firestore:"quantity"`
	UnitPrice      float64 `json:"unitPrice" firestore:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice" firestore:"totalPrice"`
	Category       string  `json:"category,omitempty" firestore:"category,omitempty"`
	Confidence     float64 `json:"confidence,omitempty" firestore:"confidence,omitempty"`
}

// Receipt is one scanned purchase. Receipts are immutable once written except
// for the narrow city backfill (see ReceiptRepository.UpdateCity).
type Receipt struct {
	ID        string        `json:"id" firestore:"-"` // document ID, auto-generated
	UserID    string        `json:"userId" firestore:"userId"`
	Store     string        `json:"store" firestore:"store"`
	City      string        `json:"city,omitempty" firestore:"city,omitempty"`
	Items     []ReceiptItem `json:"items" firestore:"items"`
	Total     float64       `json:"total" firestore:"total"`
	TotalUSD  float64       `json:"totalUSD" firestore:"totalUSD"`
	TotalCDF  float64       `json:"totalCDF" firestore:"totalCDF"`
	Currency  string        `json:"currency" firestore:"currency"`
	ScannedAt time.Time     `json:"scannedAt" firestore:"scannedAt"`
	CreatedAt time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time     `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// DerivedTotal returns the receipt total, preferring the stored value and
// falling back to the sum of item totals. Legacy documents may carry neither,
// in which case it returns 0.
func (r *Receipt) DerivedTotal() float64 {
	if r.Total > 0 {
		return r.Total
	}
	var sum float64
	for _, item := range r.Items {
		sum += item.TotalPrice
	}
	return sum
}

// SpendingStats summarizes a user's spending over a period, in USD.
type SpendingStats struct {
	PeriodStart  time.Time          `json:"periodStart"`
	PeriodEnd    time.Time          `json:"periodEnd"`
	ReceiptCount int                `json:"receiptCount"`
	TotalUSD     float64            `json:"totalUSD"`
	TotalCDF     float64            `json:"totalCDF"`
	ByStore      map[string]float64 `json:"byStore"`
	ByCategory   map[string]float64 `json:"byCategory"`
}

// CoerceTime guards against missing or zero-epoch timestamps from
// partially-written documents. A zero or epoch value falls back to fallback.
func CoerceTime(t time.Time, fallback time.Time) time.Time {
	if t.IsZero() || t.Unix() == 0 {
		return fallback
	}
	return t
}
