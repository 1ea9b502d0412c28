package domain

// Snapshot is a depth-limited view of a book, best price first on both sides.
// Snapshots are produced fresh for every emission and never mutated.
type Snapshot struct {
	Bid []PriceLevel `json:"bid"`
	Ask []PriceLevel `json:"ask"`
}

// LimitDepth keeps the maxDepth most favourable levels per side.
// maxDepth <= 0 means unbounded and returns the full book.
func LimitDepth(book *OrderBook, maxDepth int) Snapshot {
	return Snapshot{
		Bid: book.Levels(Bid, maxDepth),
		Ask: book.Levels(Ask, maxDepth),
	}
}

func (s Snapshot) Levels(side Side) []PriceLevel {
	if side == Bid {
		return s.Bid
	}
	return s.Ask
}
