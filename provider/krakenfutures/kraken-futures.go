package krakenfutures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spooky-finn/go-cryptofeed/config"
	"github.com/spooky-finn/go-cryptofeed/domain"
	"github.com/spooky-finn/go-cryptofeed/usecase"
)

const (
	ID      = "KRAKEN_FUTURES"
	Address = "wss://futures.kraken.com/ws/v1"
)

var ErrInactivePair = errors.New("pair is not active")

var logger = log.New(os.Stdout, "[kraken-futures] ", log.LstdFlags)

type Options struct {
	// UUID of the feed instance; generated when empty.
	UUID      string
	Config    config.FeedConfig
	Callbacks map[domain.EventKind][]domain.Callback
	// Instruments lists the active symbols. Defaults to the public REST API.
	Instruments interface {
		Instruments(ctx context.Context) (map[string]string, error)
	}
}

// KrakenFutures decodes the Kraken Futures websocket protocol into feed
// events. Book state is kept by the embedded Feed.
type KrakenFutures struct {
	*usecase.Feed

	vocabulary Vocabulary
	validator  domain.IDepthUpdateValidator
	lastSeq    map[string]int64
}

func New(ctx context.Context, opts Options) (*KrakenFutures, error) {
	if opts.UUID == "" {
		opts.UUID = usecase.NewFeedUUID(ID)
	}
	if opts.Instruments == nil {
		opts.Instruments = NewInstrumentsAPI("")
	}

	k := &KrakenFutures{
		validator: &KrakenDepthUpdateValidator{},
		lastSeq:   make(map[string]int64),
	}

	feed, err := usecase.NewFeed(usecase.FeedOptions{
		ID:         ID,
		UUID:       opts.UUID,
		Config:     opts.Config,
		Callbacks:  opts.Callbacks,
		Vocabulary: k.vocabulary,
	}, k)
	if err != nil {
		return nil, err
	}

	instruments, err := opts.Instruments.Instruments(ctx)
	if err != nil {
		return nil, err
	}
	for _, pair := range feed.Pairs() {
		if _, ok := instruments[pair]; !ok {
			return nil, fmt.Errorf("%w: %s on %s", ErrInactivePair, pair, ID)
		}
	}

	k.Feed = feed
	return k, nil
}

func (k *KrakenFutures) Address() string {
	return Address
}

type subscribeRequest struct {
	Event      string   `json:"event"`
	Feed       string   `json:"feed"`
	ProductIDs []string `json:"product_ids"`
}

// ResetState drops the books and sequence numbers of the previous connection.
// The exchange answers a book subscription with a fresh book_snapshot.
func (k *KrakenFutures) ResetState() {
	k.ResetBooks()
	k.lastSeq = make(map[string]int64)
}

// Subscribe sends one subscribe request per channel. It only writes to conn
// and may run on the connection's goroutine.
func (k *KrakenFutures) Subscribe(conn domain.JSONWriter) error {
	subscriptions := k.Subscriptions()
	channels := lo.Keys(subscriptions)
	sort.Strings(channels)

	for _, ch := range channels {
		err := conn.WriteJSON(subscribeRequest{
			Event:      "subscribe",
			Feed:       ch,
			ProductIDs: subscriptions[ch],
		})
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", ch, err)
		}
	}

	return nil
}

type envelope struct {
	Event     string `json:"event"`
	Feed      string `json:"feed"`
	ProductID string `json:"product_id"`
}

type tradeMessage struct {
	ProductID string          `json:"product_id"`
	UID       string          `json:"uid"`
	Side      string          `json:"side"`
	Time      int64           `json:"time"`
	Qty       decimal.Decimal `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

type tickerMessage struct {
	ProductID string          `json:"product_id"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
}

type levelMessage struct {
	Price decimal.Decimal `json:"price"`
	Qty   decimal.Decimal `json:"qty"`
}

type bookSnapshotMessage struct {
	ProductID string         `json:"product_id"`
	Seq       int64          `json:"seq"`
	Bids      []levelMessage `json:"bids"`
	Asks      []levelMessage `json:"asks"`
}

type bookMessage struct {
	ProductID string          `json:"product_id"`
	Side      string          `json:"side"`
	Seq       int64           `json:"seq"`
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
}

func (k *KrakenFutures) HandleMessage(ctx context.Context, msg []byte, timestamp float64) error {
	var env envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return fmt.Errorf("kraken futures: decode message: %w", err)
	}

	if env.Event != "" {
		switch env.Event {
		case "info", "subscribed":
			return nil
		default:
			logger.Printf("%s: invalid message type %s", ID, string(msg))
			return nil
		}
	}

	pair := k.vocabulary.PairFromExchange(env.ProductID)

	switch env.Feed {
	case "trade":
		return k.trade(ctx, msg, pair)
	case "trade_snapshot":
		return nil
	case "ticker_lite":
		return k.ticker(ctx, msg, pair, timestamp)
	case "book_snapshot":
		return k.bookSnapshot(ctx, msg, pair, timestamp)
	case "book":
		return k.book(ctx, msg, pair, timestamp)
	default:
		logger.Printf("%s: invalid message type %s", ID, string(msg))
		return nil
	}
}

func (k *KrakenFutures) trade(ctx context.Context, msg []byte, pair string) error {
	var m tradeMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return fmt.Errorf("kraken futures: decode trade: %w", err)
	}

	side := domain.Sell
	if m.Side == "buy" {
		side = domain.Buy
	}

	return k.Callback(ctx, &domain.TradeEvent{
		Feed:      ID,
		Pair:      pair,
		Side:      side,
		Amount:    m.Qty,
		Price:     m.Price,
		OrderID:   m.UID,
		Timestamp: float64(m.Time) / 1000,
	})
}

func (k *KrakenFutures) ticker(ctx context.Context, msg []byte, pair string, timestamp float64) error {
	var m tickerMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return fmt.Errorf("kraken futures: decode ticker: %w", err)
	}

	return k.Callback(ctx, &domain.TickerEvent{
		Feed:      ID,
		Pair:      pair,
		Bid:       m.Bid,
		Ask:       m.Ask,
		Timestamp: timestamp,
	})
}

func (k *KrakenFutures) bookSnapshot(ctx context.Context, msg []byte, pair string, timestamp float64) error {
	var m bookSnapshotMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return fmt.Errorf("kraken futures: decode book snapshot: %w", err)
	}

	toLevels := func(levels []levelMessage) []domain.PriceLevel {
		return lo.Map(levels, func(l levelMessage, _ int) domain.PriceLevel {
			return domain.NewPriceLevel(l.Price, l.Qty)
		})
	}

	k.lastSeq[pair] = m.Seq

	return k.BookCallback(ctx, domain.BookUpdate{
		Pair: pair,
		Kind: domain.L2,
		Changes: domain.Delta{
			Bid: toLevels(m.Bids),
			Ask: toLevels(m.Asks),
		},
		Forced:    true,
		Timestamp: timestamp,
	})
}

func (k *KrakenFutures) book(ctx context.Context, msg []byte, pair string, timestamp float64) error {
	var m bookMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return fmt.Errorf("kraken futures: decode book: %w", err)
	}

	lastSeq, ok := k.lastSeq[pair]
	if !ok {
		if config.DebugMode {
			logger.Printf("%s: dropped book update %s seq=%d without a snapshot", ID, pair, m.Seq)
		}
		return nil
	}

	err := k.validator.IsValidUpd(m.Seq, lastSeq)
	if k.validator.IsErrOutdated(err) {
		if config.DebugMode {
			logger.Printf("%s: dropped outdated book update %s seq=%d last=%d", ID, pair, m.Seq, lastSeq)
		}
		return nil
	}
	if k.validator.IsErrOutOfSequece(err) {
		logger.Printf("%s: book update gap on %s: seq=%d last=%d", ID, pair, m.Seq, lastSeq)
	}
	k.lastSeq[pair] = m.Seq

	level := domain.NewPriceLevel(m.Price, m.Qty)
	changes := domain.EmptyDelta()
	if m.Side == "buy" {
		changes.Bid = append(changes.Bid, level)
	} else {
		changes.Ask = append(changes.Ask, level)
	}

	return k.BookCallback(ctx, domain.BookUpdate{
		Pair:      pair,
		Kind:      domain.L2,
		Changes:   changes,
		Timestamp: timestamp,
	})
}
