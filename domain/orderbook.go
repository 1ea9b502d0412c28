package domain

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"
)

type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

type BookKind string

const (
	L2 BookKind = "L2"
	L3 BookKind = "L3"
)

type PriceLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

func NewPriceLevel(price, size decimal.Decimal) PriceLevel {
	return PriceLevel{Price: price, Size: size}
}

// OrderBook is the live, unbounded book of one pair. Every side is a red-black
// tree keyed by price; a price with zero size is never stored.
type OrderBook struct {
	Bids *rbt.Tree
	Asks *rbt.Tree
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		Bids: rbt.NewWith(BidComparator),
		Asks: rbt.NewWith(AskComparator),
	}
}

// Set upserts a price level. A zero size removes the level; removing a price
// that is not in the book is a no-op.
func (ob *OrderBook) Set(side Side, price, size decimal.Decimal) {
	tree := ob.tree(side)
	if size.IsZero() {
		tree.Remove(price)
		return
	}
	tree.Put(price, size)
}

func (ob *OrderBook) Apply(changes Delta) {
	for _, level := range changes.Bid {
		ob.Set(Bid, level.Price, level.Size)
	}
	for _, level := range changes.Ask {
		ob.Set(Ask, level.Price, level.Size)
	}
}

func (ob *OrderBook) Size(side Side, price decimal.Decimal) (decimal.Decimal, bool) {
	v, ok := ob.tree(side).Get(price)
	if !ok {
		return decimal.Zero, false
	}
	return v.(decimal.Decimal), true
}

func (ob *OrderBook) Len(side Side) int {
	return ob.tree(side).Size()
}

// Levels returns up to limit levels of one side, best price first.
// A limit <= 0 returns the whole side.
func (ob *OrderBook) Levels(side Side, limit int) []PriceLevel {
	tree := ob.tree(side)

	n := tree.Size()
	if limit > 0 && limit < n {
		n = limit
	}

	levels := make([]PriceLevel, 0, n)
	it := tree.Iterator()
	for len(levels) < n && it.Next() {
		levels = append(levels, PriceLevel{
			Price: it.Key().(decimal.Decimal),
			Size:  it.Value().(decimal.Decimal),
		})
	}

	return levels
}

func (ob *OrderBook) Clear() {
	ob.Bids.Clear()
	ob.Asks.Clear()
}

func (ob *OrderBook) tree(side Side) *rbt.Tree {
	if side == Bid {
		return ob.Bids
	}
	return ob.Asks
}

func AskComparator(a, b interface{}) int {
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

func BidComparator(a, b interface{}) int {
	return b.(decimal.Decimal).Cmp(a.(decimal.Decimal))
}
