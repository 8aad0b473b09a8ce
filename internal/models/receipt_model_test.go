package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerivedTotal(t *testing.T) {
	t.Run("prefers stored total", func(t *testing.T) {
		r := &Receipt{
			Total: 25.00,
			Items: []ReceiptItem{{TotalPrice: 5.00}, {TotalPrice: 7.50}},
		}
		assert.Equal(t, 25.00, r.DerivedTotal())
	})

	t.Run("falls back to item sum", func(t *testing.T) {
		r := &Receipt{
			Items: []ReceiptItem{{TotalPrice: 5.00}, {TotalPrice: 7.50}},
		}
		assert.Equal(t, 12.50, r.DerivedTotal())
	})

	t.Run("no total and no items", func(t *testing.T) {
		r := &Receipt{}
		assert.Equal(t, 0.0, r.DerivedTotal())
	})
}

func TestCoerceTime(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("zero value", func(t *testing.T) {
		assert.Equal(t, fallback, CoerceTime(time.Time{}, fallback))
	})

	t.Run("unix epoch", func(t *testing.T) {
		assert.Equal(t, fallback, CoerceTime(time.Unix(0, 0), fallback))
	})

	t.Run("valid time passes through", func(t *testing.T) {
		valid := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
		assert.Equal(t, valid, CoerceTime(valid, fallback))
	})
}
