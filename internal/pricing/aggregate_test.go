package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateSavingsWithTieBreak(t *testing.T) {
	history := []Observation{
		{Price: 10.99, Store: "StoreA", ObservedAt: date(2024, 1, 1)},
		{Price: 10.99, Store: "StoreB", ObservedAt: date(2024, 2, 1)},
	}

	got := Aggregate(12.99, "StoreC", date(2024, 3, 1), history)

	assert.Equal(t, 10.99, got.BestPrice)
	// Equal best prices resolve to the most recent observation.
	assert.Equal(t, "StoreB", got.BestStore)
	assert.Equal(t, 2.0, got.PotentialSavings)
	assert.InDelta(t, 15.4, got.SavingsPercentage, 0.05)
	assert.Equal(t, 3, got.PriceCount)
	assert.False(t, got.IsBestPrice)
}

func TestAggregateNoHistoryIsBestPrice(t *testing.T) {
	got := Aggregate(5.00, "StoreA", date(2024, 1, 1), nil)

	assert.Equal(t, 5.00, got.BestPrice)
	assert.Equal(t, "StoreA", got.BestStore)
	assert.Equal(t, 0.0, got.PotentialSavings)
	assert.Equal(t, 0.0, got.SavingsPercentage)
	assert.True(t, got.IsBestPrice)
	assert.Equal(t, 1, got.PriceCount)
}

func TestAggregateCheapestCurrentPrice(t *testing.T) {
	history := []Observation{
		{Price: 8.00, Store: "StoreB", ObservedAt: date(2024, 1, 1)},
		{Price: 9.50, Store: "StoreC", ObservedAt: date(2024, 1, 15)},
	}

	got := Aggregate(7.00, "StoreA", date(2024, 2, 1), history)

	assert.Equal(t, 7.00, got.BestPrice)
	assert.Equal(t, "StoreA", got.BestStore)
	assert.True(t, got.IsBestPrice)
	assert.Equal(t, 0.0, got.PotentialSavings)
}

func TestAggregateStatsInvariants(t *testing.T) {
	history := []Observation{
		{Price: 3.00, Store: "B", ObservedAt: date(2024, 1, 1)},
		{Price: 6.00, Store: "C", ObservedAt: date(2024, 1, 2)},
		{Price: 9.00, Store: "D", ObservedAt: date(2024, 1, 3)},
	}

	got := Aggregate(6.00, "A", date(2024, 2, 1), history)

	assert.Equal(t, 3.00, got.MinPrice)
	assert.Equal(t, 9.00, got.MaxPrice)
	assert.Equal(t, 6.00, got.AveragePrice)
	assert.LessOrEqual(t, got.MinPrice, got.AveragePrice)
	assert.LessOrEqual(t, got.AveragePrice, got.MaxPrice)
	assert.LessOrEqual(t, got.MinPrice, got.BestPrice)
	assert.Equal(t, 4, got.PriceCount)
}

func TestAggregateZeroCurrentPrice(t *testing.T) {
	got := Aggregate(0, "A", date(2024, 1, 1), nil)
	assert.Equal(t, 0.0, got.SavingsPercentage)
}
