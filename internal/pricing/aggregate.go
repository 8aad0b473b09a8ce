package pricing

import (
	"math"
	"time"
)

// Observation is one known price for a product at a store.
type Observation struct {
	Price      float64
	Store      string
	ObservedAt time.Time
}

// Comparison is the aggregate view of a product's price history relative to
// the price just paid.
type Comparison struct {
	CurrentPrice      float64
	CurrentStore      string
	BestPrice         float64
	BestStore         string
	AveragePrice      float64
	MinPrice          float64
	MaxPrice          float64
	PriceCount        int
	PotentialSavings  float64
	SavingsPercentage float64
	IsBestPrice       bool
}

// Aggregate computes price statistics for one product. The current receipt's
// price is always part of the observation set. Best-price ties are broken by
// the most recent observation. With no external observations the current
// price is the best price and savings are zero.
func Aggregate(currentPrice float64, currentStore string, currentAt time.Time, history []Observation) Comparison {
	all := make([]Observation, 0, len(history)+1)
	all = append(all, Observation{Price: currentPrice, Store: currentStore, ObservedAt: currentAt})
	all = append(all, history...)

	best := all[0]
	minP, maxP, sum := all[0].Price, all[0].Price, 0.0
	for _, o := range all {
		sum += o.Price
		if o.Price < minP {
			minP = o.Price
		}
		if o.Price > maxP {
			maxP = o.Price
		}
		if o.Price < best.Price || (o.Price == best.Price && o.ObservedAt.After(best.ObservedAt)) {
			best = o
		}
	}

	savings := math.Max(0, currentPrice-best.Price)
	pct := 0.0
	if currentPrice > 0 {
		pct = savings / currentPrice * 100
	}

	return Comparison{
		CurrentPrice:      currentPrice,
		CurrentStore:      currentStore,
		BestPrice:         best.Price,
		BestStore:         best.Store,
		AveragePrice:      round2(sum / float64(len(all))),
		MinPrice:          minP,
		MaxPrice:          maxP,
		PriceCount:        len(all),
		PotentialSavings:  round2(savings),
		SavingsPercentage: round2(pct),
		IsBestPrice:       savings == 0,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
