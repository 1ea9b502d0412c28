package domain

import "github.com/shopspring/decimal"

type EventKind string

const (
	Trades     EventKind = "trades"
	Ticker     EventKind = "ticker"
	L2Book     EventKind = "l2_book"
	L3Book     EventKind = "l3_book"
	BookDelta  EventKind = "book_delta"
	Volume     EventKind = "volume"
	Funding    EventKind = "funding"
	Instrument EventKind = "instrument"
)

var EventKinds = []EventKind{Trades, Ticker, L2Book, L3Book, BookDelta, Volume, Funding, Instrument}

func IsEventKind(s string) bool {
	for _, k := range EventKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// BookKindEvent maps a book kind to the snapshot event it is emitted as.
func BookKindEvent(kind BookKind) EventKind {
	if kind == L3 {
		return L3Book
	}
	return L2Book
}

// Event is a payload handed to consumer callbacks. Consumers must treat it as
// read-only.
type Event interface {
	Kind() EventKind
}

type BookEvent struct {
	Feed      string   `json:"feed"`
	Pair      string   `json:"pair"`
	BookKind  BookKind `json:"book_kind"`
	Book      Snapshot `json:"book"`
	Timestamp float64  `json:"timestamp"`
}

func (e *BookEvent) Kind() EventKind { return BookKindEvent(e.BookKind) }

type DeltaEvent struct {
	Feed      string  `json:"feed"`
	Pair      string  `json:"pair"`
	Delta     Delta   `json:"delta"`
	Timestamp float64 `json:"timestamp"`
}

func (e *DeltaEvent) Kind() EventKind { return BookDelta }

type TradeSide string

const (
	Buy  TradeSide = "buy"
	Sell TradeSide = "sell"
)

type TradeEvent struct {
	Feed      string          `json:"feed"`
	Pair      string          `json:"pair"`
	Side      TradeSide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	OrderID   string          `json:"order_id"`
	Timestamp float64         `json:"timestamp"`
}

func (e *TradeEvent) Kind() EventKind { return Trades }

type TickerEvent struct {
	Feed      string          `json:"feed"`
	Pair      string          `json:"pair"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
	Timestamp float64         `json:"timestamp"`
}

func (e *TickerEvent) Kind() EventKind { return Ticker }

// BookUpdate is a decoded book mutation handed to a feed by its exchange
// adapter. Forced marks a full re-sync; Changes then holds the whole book.
type BookUpdate struct {
	Pair      string
	Kind      BookKind
	Changes   Delta
	Forced    bool
	Timestamp float64
}
