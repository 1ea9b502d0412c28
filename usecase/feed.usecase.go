package usecase

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spooky-finn/go-cryptofeed/config"
	"github.com/spooky-finn/go-cryptofeed/domain"
	promclient "github.com/spooky-finn/go-cryptofeed/infrastructure/prometheus"
)

var logger = log.New(os.Stdout, "[feed-usecase] ", log.LstdFlags)

type FeedOptions struct {
	// ID names the exchange, e.g. "KRAKEN_FUTURES".
	ID string
	// UUID identifies this feed instance. Generate it once with NewFeedUUID.
	UUID string

	Config     config.FeedConfig
	Callbacks  map[domain.EventKind][]domain.Callback
	Vocabulary domain.Vocabulary
}

// NewFeedUUID returns the instance id of a feed: the exchange id followed by
// a random uuid.
func NewFeedUUID(id string) string {
	return id + uuid.NewString()
}

// Feed is the per-exchange composition root. It owns the books, the callback
// registry and the update scheduler, and turns decoded book mutations into
// consumer events.
//
// A Feed is driven by a single goroutine (see FeedMaintainer); none of its
// methods are safe for concurrent use.
type Feed struct {
	id     string
	uuid   string
	config config.FeedConfig

	pairs         []string
	channels      []string
	subscriptions map[string][]string

	store     *domain.BookStore
	callbacks *domain.CallbackRegistry
	scheduler *domain.UpdateScheduler
	handler   domain.MessageHandler
}

// NewFeed validates opts and builds a feed. The handler decodes raw messages
// for HandleMessage; it may be nil for feeds that are only fed through
// BookCallback and Callback.
func NewFeed(opts FeedOptions, handler domain.MessageHandler) (*Feed, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vocabulary := opts.Vocabulary
	if vocabulary == nil {
		vocabulary = domain.IdentityVocabulary{}
	}

	callbacks := domain.NewCallbackRegistry()
	for _, kind := range domain.EventKinds {
		if err := callbacks.Register(kind, opts.Callbacks[kind]...); err != nil {
			return nil, err
		}
	}
	callbacks.Freeze()

	f := &Feed{
		id:     opts.ID,
		uuid:   opts.UUID,
		config: cfg,

		pairs: lo.Map(cfg.Pairs, func(pair string, _ int) string {
			return vocabulary.PairToExchange(pair)
		}),
		channels: lo.Map(cfg.Channels, func(ch string, _ int) string {
			return vocabulary.ChannelToExchange(domain.EventKind(ch))
		}),
		subscriptions: make(map[string][]string),

		store:     domain.NewBookStore(),
		callbacks: callbacks,
		scheduler: domain.NewUpdateScheduler(callbacks.Has(domain.BookDelta), cfg.MaxDepth, cfg.BookInterval),
		handler:   handler,
	}

	for ch, pairs := range cfg.ChannelConfig {
		f.subscriptions[vocabulary.ChannelToExchange(domain.EventKind(ch))] = lo.Map(pairs, func(pair string, _ int) string {
			return vocabulary.PairToExchange(pair)
		})
	}
	if len(f.subscriptions) == 0 {
		for _, ch := range f.channels {
			f.subscriptions[ch] = f.pairs
		}
	}

	logger.Printf("feed %s created: mode=%s max_depth=%d book_interval=%d", f.uuid, f.scheduler.Mode(), cfg.MaxDepth, cfg.BookInterval)

	return f, nil
}

func (f *Feed) ID() string {
	return f.id
}

func (f *Feed) UUID() string {
	return f.uuid
}

func (f *Feed) Config() config.FeedConfig {
	return f.config
}

// Subscriptions maps exchange channel names to exchange pair symbols.
func (f *Feed) Subscriptions() map[string][]string {
	return f.subscriptions
}

// Pairs returns the exchange symbols of every subscribed pair.
func (f *Feed) Pairs() []string {
	all := []string{}
	for _, pairs := range f.subscriptions {
		all = append(all, pairs...)
	}
	if len(all) == 0 {
		all = append(all, f.pairs...)
	}
	return lo.Uniq(all)
}

func (f *Feed) Book(pair string, kind domain.BookKind) (*domain.PairBook, error) {
	return f.store.Get(pair, kind)
}

// ResetBooks drops every live book. It must run on the goroutine that
// processes the feed's messages.
func (f *Feed) ResetBooks() {
	f.store.Reset()
}

func (f *Feed) ResetState() {
	f.ResetBooks()
}

// HandleMessage hands a raw exchange message to the adapter's decoder.
func (f *Feed) HandleMessage(ctx context.Context, msg []byte, timestamp float64) error {
	if f.handler == nil {
		return fmt.Errorf("feed %s: %w", f.id, domain.ErrNotImplemented)
	}
	return f.handler.HandleMessage(ctx, msg, timestamp)
}

// BookCallback applies a decoded book mutation and emits at most one event
// for it. Callback errors are returned unchanged; the book state of this
// cycle is already committed when they happen.
func (f *Feed) BookCallback(ctx context.Context, update domain.BookUpdate) error {
	pb := f.store.Apply(update.Pair, update.Kind, update.Changes, update.Forced)
	emission := f.scheduler.Schedule(pb, update.Changes, update.Forced)

	switch emission.Kind {
	case domain.EmitDelta:
		promclient.BookDeltasEmitted.WithLabelValues(f.id, update.Pair).Inc()
		return f.Callback(ctx, &domain.DeltaEvent{
			Feed:      f.id,
			Pair:      update.Pair,
			Delta:     emission.Delta,
			Timestamp: update.Timestamp,
		})
	case domain.EmitSnapshot:
		promclient.BookSnapshotsEmitted.WithLabelValues(f.id, update.Pair).Inc()
		return f.Callback(ctx, &domain.BookEvent{
			Feed:      f.id,
			Pair:      update.Pair,
			BookKind:  update.Kind,
			Book:      emission.Snapshot,
			Timestamp: update.Timestamp,
		})
	default:
		promclient.BookDeltasSuppressed.WithLabelValues(f.id, update.Pair).Inc()
		return nil
	}
}

// Callback dispatches an event to the consumers registered for its kind.
func (f *Feed) Callback(ctx context.Context, event domain.Event) error {
	return f.callbacks.Dispatch(ctx, event)
}
