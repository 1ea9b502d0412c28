package domain

import (
	"github.com/shopspring/decimal"
)

// Delta lists the levels that changed between two snapshots. A removed level
// is reported with a zero size.
type Delta struct {
	Bid []PriceLevel `json:"bid"`
	Ask []PriceLevel `json:"ask"`
}

func EmptyDelta() Delta {
	return Delta{Bid: []PriceLevel{}, Ask: []PriceLevel{}}
}

func (d Delta) IsEmpty() bool {
	return len(d.Bid) == 0 && len(d.Ask) == 0
}

func (d Delta) Levels(side Side) []PriceLevel {
	if side == Bid {
		return d.Bid
	}
	return d.Ask
}

// ComputeDelta diffs two snapshots side by side. With no previous snapshot the
// whole current snapshot is the delta.
func ComputeDelta(previous *Snapshot, current Snapshot) Delta {
	if previous == nil {
		return Delta{
			Bid: append([]PriceLevel{}, current.Bid...),
			Ask: append([]PriceLevel{}, current.Ask...),
		}
	}

	return Delta{
		Bid: diffSide(previous.Bid, current.Bid),
		Ask: diffSide(previous.Ask, current.Ask),
	}
}

func diffSide(previous, current []PriceLevel) []PriceLevel {
	changes := []PriceLevel{}

	index := make(map[string]decimal.Decimal, len(previous))
	for _, level := range previous {
		index[priceKey(level.Price)] = level.Size
	}

	for _, level := range current {
		key := priceKey(level.Price)
		size, ok := index[key]
		if !ok || !size.Equal(level.Size) {
			changes = append(changes, level)
		}
		delete(index, key)
	}

	// whatever is left in the index is gone from the current view
	for _, level := range previous {
		if _, ok := index[priceKey(level.Price)]; ok {
			changes = append(changes, PriceLevel{Price: level.Price, Size: decimal.Zero})
		}
	}

	return changes
}

// ApplyDelta patches a snapshot with a delta and returns the result ordered
// best price first. The input snapshot is left untouched.
func ApplyDelta(snapshot Snapshot, delta Delta) Snapshot {
	book := NewOrderBook()
	book.Apply(Delta{Bid: snapshot.Bid, Ask: snapshot.Ask})
	book.Apply(delta)

	return LimitDepth(book, 0)
}

// decimal.Decimal is not comparable by value, so levels are indexed by the
// normalised string form ("10.30" and "10.3" share a key).
func priceKey(price decimal.Decimal) string {
	return price.String()
}
