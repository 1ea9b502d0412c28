package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookStore_Apply(t *testing.T) {
	s := NewBookStore()

	s.Apply("PI_XBTUSD", L2, Delta{Bid: []PriceLevel{lvl("10", "1")}}, true)
	pb := s.Apply("PI_XBTUSD", L2, Delta{Bid: []PriceLevel{lvl("9", "2")}}, false)

	got, err := s.Get("PI_XBTUSD", L2)
	require.NoError(t, err)
	assert.Same(t, pb, got)
	assertLevels(t, []PriceLevel{lvl("10", "1"), lvl("9", "2")}, got.Book.Levels(Bid, 0), "bids")
}

func TestBookStore_ForcedReplacesBook(t *testing.T) {
	s := NewBookStore()
	s.Apply("PI_XBTUSD", L2, Delta{Bid: []PriceLevel{lvl("10", "1"), lvl("9", "2")}}, true)

	pb := s.Apply("PI_XBTUSD", L2, Delta{Ask: []PriceLevel{lvl("11", "1")}}, true)

	assert.Equal(t, 0, pb.Book.Len(Bid), "stale levels should not survive a re-sync")
	assert.Equal(t, 1, pb.Book.Len(Ask))
}

func TestBookStore_KeysByKindAndPair(t *testing.T) {
	s := NewBookStore()
	s.Apply("BTC-USD", L2, Delta{Bid: []PriceLevel{lvl("10", "1")}}, false)
	s.Apply("BTC-USD", L3, Delta{Bid: []PriceLevel{lvl("10", "5")}}, false)
	s.Apply("ETH-USD", L2, Delta{}, false)

	assert.Equal(t, 3, s.OrderBookCount())

	_, err := s.Get("LTC-USD", L2)
	assert.ErrorIs(t, err, ErrOrderBookNotFound)
}

func TestBookStore_Reset(t *testing.T) {
	s := NewBookStore()
	s.Apply("BTC-USD", L2, Delta{Bid: []PriceLevel{lvl("10", "1")}}, false)

	s.Reset()

	assert.Equal(t, 0, s.OrderBookCount())
	_, err := s.Get("BTC-USD", L2)
	assert.ErrorIs(t, err, ErrOrderBookNotFound)
}
