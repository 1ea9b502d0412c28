package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lvl(price, size string) PriceLevel {
	return PriceLevel{Price: d(price), Size: d(size)}
}

func bookFrom(t *testing.T, bids, asks []PriceLevel) *OrderBook {
	t.Helper()
	ob := NewOrderBook()
	ob.Apply(Delta{Bid: bids, Ask: asks})
	return ob
}

// levelsEqual compares levels by numeric value, ignoring decimal exponents.
func levelsEqual(a, b []PriceLevel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Price.Equal(b[i].Price) || !a[i].Size.Equal(b[i].Size) {
			return false
		}
	}
	return true
}

func assertLevels(t *testing.T, expected, actual []PriceLevel, msg string) {
	t.Helper()
	assert.Truef(t, levelsEqual(expected, actual), "%s\nexpected: %v\nactual:   %v", msg, expected, actual)
}
