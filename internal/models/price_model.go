package models

import "time"

// PricePoint is one community price observation for a normalized product at a
// store. Observations are written when receipts are created and aggregated by
// the price-comparison service.
type PricePoint struct {
	ID             string    `json:"id" firestore:"-"` // document ID, auto-generated
	NormalizedName string    `json:"normalizedName" firestore:"normalizedName"`
	Store          string    `json:"store" firestore:"store"`
	City           string    `json:"city,omitempty" firestore:"city,omitempty"`
	Price          float64   `json:"price" firestore:"price"`
	Currency       string    `json:"currency" firestore:"currency"`
	ReceiptID      string    `json:"receiptId" firestore:"receiptId"`
	ObservedAt     time.Time `json:"observedAt" firestore:"observedAt"`
}

// PriceComparison is the aggregation result for one normalized product on a
// receipt. Invariants: MinPrice <= AveragePrice <= MaxPrice and
// MinPrice <= BestPrice.
type PriceComparison struct {
	ProductName       string  `json:"productName"`
	CurrentPrice      float64 `json:"currentPrice"`
	CurrentStore      string  `json:"currentStore"`
	BestPrice         float64 `json:"bestPrice"`
	BestStore         string  `json:"bestStore"`
	AveragePrice      float64 `json:"averagePrice"`
	MinPrice          float64 `json:"minPrice"`
	MaxPrice          float64 `json:"maxPrice"`
	PriceCount        int     `json:"priceCount"`
	PotentialSavings  float64 `json:"potentialSavings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
	// IsBestPrice is set when no cheaper observation exists; clients render a
	// best-price affirmation instead of a savings opportunity.
	IsBestPrice bool `json:"isBestPrice"`
}

// ComparisonReport is the full price-comparison response for a receipt.
type ComparisonReport struct {
	ReceiptID             string            `json:"receiptId"`
	Comparisons           []PriceComparison `json:"comparisons"`
	TotalPotentialSavings float64           `json:"totalPotentialSavings"`
	Currency              string            `json:"currency"`
}
