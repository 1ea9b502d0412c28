package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"
	"github.com/spooky-finn/go-cryptofeed/config"
	"github.com/spooky-finn/go-cryptofeed/domain"
	promclient "github.com/spooky-finn/go-cryptofeed/infrastructure/prometheus"
)

// RawMessage is a queued frame. A Reset item carries no data and asks the
// handler to drop its per-connection state.
type RawMessage struct {
	Data      []byte
	Timestamp float64
	Reset     bool
}

// FeedMaintainer is the single writer of a feed. The connection layer pushes
// raw messages from its own goroutine; Run hands them to the feed one at a
// time, in arrival order, each one fully processed before the next.
type FeedMaintainer struct {
	feed     domain.MessageHandler
	feedName string

	queue  deque.Deque[RawMessage]
	mu     sync.Mutex
	notify chan struct{}

	errCount atomic.Int64
}

func NewFeedMaintainer(feedName string, feed domain.MessageHandler) *FeedMaintainer {
	return &FeedMaintainer{
		feed:     feed,
		feedName: feedName,
		queue:    deque.Deque[RawMessage]{},
		notify:   make(chan struct{}, 1),
	}
}

func (m *FeedMaintainer) Push(msg []byte, timestamp float64) {
	m.push(RawMessage{Data: msg, Timestamp: timestamp})
}

// PushReset queues a state reset behind every message pushed so far. The
// connection layer calls it before re-subscribing.
func (m *FeedMaintainer) PushReset() {
	m.push(RawMessage{Reset: true})
}

func (m *FeedMaintainer) push(msg RawMessage) {
	m.mu.Lock()
	m.queue.PushBack(msg)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *FeedMaintainer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// ErrCount is the number of messages dropped so far.
func (m *FeedMaintainer) ErrCount() int64 {
	return m.errCount.Load()
}

// Run drains the queue until ctx is done. A message that fails to process is
// logged and skipped; a feed without a message handler stops the loop.
func (m *FeedMaintainer) Run(ctx context.Context) error {
	for {
		msg, ok := m.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-m.notify:
				continue
			}
		}

		if msg.Reset {
			if r, ok := m.feed.(domain.StateResetter); ok {
				r.ResetState()
			}
			continue
		}

		if err := m.feed.HandleMessage(ctx, msg.Data, msg.Timestamp); err != nil {
			if errors.Is(err, domain.ErrNotImplemented) {
				return err
			}

			m.errCount.Add(1)
			promclient.MessageErrors.WithLabelValues(m.feedName).Inc()
			logger.Printf("%s: message dropped: %s", m.feedName, err)
			if config.DebugMode {
				logger.Printf("%s: dropped message: %s", m.feedName, string(msg.Data))
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (m *FeedMaintainer) pop() (RawMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queue.Len() == 0 {
		return RawMessage{}, false
	}
	return m.queue.PopFront(), true
}
