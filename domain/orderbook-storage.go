package domain

import (
	"errors"
	"log"
	"os"
)

var logger = log.New(os.Stdout, "[orderbook-storage] ", log.LstdFlags)
var ErrOrderBookNotFound = errors.New("order book not found")

// PairBook is the state kept for one (book kind, pair) of a feed.
type PairBook struct {
	Pair string
	Kind BookKind
	Book *OrderBook

	// Previous is the last depth-limited view, replaced on every cycle that
	// derives one. Nil until the first derivation.
	Previous *Snapshot
	// Updates counts delta emissions since the last full snapshot.
	Updates int

	primed bool
}

type bookKey struct {
	kind BookKind
	pair string
}

// BookStore owns the live books of a single feed. It is not safe for
// concurrent use; a feed drives it from one goroutine.
type BookStore struct {
	storage map[bookKey]*PairBook
}

func NewBookStore() *BookStore {
	return &BookStore{
		storage: make(map[bookKey]*PairBook),
	}
}

// Apply applies an inbound change set to the live book of pair, creating the
// book on first use. A forced update is a full re-sync and replaces the book.
func (s *BookStore) Apply(pair string, kind BookKind, changes Delta, forced bool) *PairBook {
	key := bookKey{kind: kind, pair: pair}
	pb, ok := s.storage[key]
	if !ok {
		pb = &PairBook{Pair: pair, Kind: kind, Book: NewOrderBook()}
		s.storage[key] = pb
	}

	if forced {
		pb.Book.Clear()
	}
	pb.Book.Apply(changes)

	return pb
}

func (s *BookStore) Get(pair string, kind BookKind) (*PairBook, error) {
	pb, ok := s.storage[bookKey{kind: kind, pair: pair}]
	if !ok {
		return nil, ErrOrderBookNotFound
	}
	return pb, nil
}

func (s *BookStore) OrderBookCount() int {
	return len(s.storage)
}

// Reset drops every book. Used when a connection re-subscribes and the
// exchange is about to send fresh snapshots.
func (s *BookStore) Reset() {
	if len(s.storage) > 0 {
		logger.Printf("dropping %d order books", len(s.storage))
	}
	s.storage = make(map[bookKey]*PairBook)
}
