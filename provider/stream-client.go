package provider

import (
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/recws-org/recws"
	"github.com/spooky-finn/go-cryptofeed/config"
	"github.com/spooky-finn/go-cryptofeed/domain"
)

var logger = log.New(os.Stdout, "[provider] ", log.LstdFlags)

const (
	pingDelay        = time.Minute * 9
	readErrorBackoff = 100 * time.Millisecond
)

// MessageSink receives raw frames together with their receive time.
// PushReset marks a new connection: everything pushed before it belongs to
// the previous one.
type MessageSink interface {
	Push(msg []byte, timestamp float64)
	PushReset()
}

// StreamClient keeps a reconnecting websocket to one feed's endpoint. The
// adapter's Subscribe runs on every (re)connect, so a dropped connection ends
// with fresh subscriptions and, for most exchanges, fresh book snapshots.
type StreamClient struct {
	adapter domain.FeedAdapter
	sink    MessageSink

	conn *recws.RecConn
	done chan struct{}
	once sync.Once
}

func NewStreamClient(adapter domain.FeedAdapter, sink MessageSink) *StreamClient {
	return &StreamClient{
		adapter: adapter,
		sink:    sink,
		done:    make(chan struct{}),
	}
}

func (c *StreamClient) Connect() error {
	conn := &recws.RecConn{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 5 * time.Second,
		KeepAliveTimeout: pingDelay,
		NonVerbose:       !config.DebugMode,
	}
	conn.SubscribeHandler = func() error {
		logger.Printf("%s: subscribing on %s", c.adapter.ID(), c.adapter.Address())
		c.sink.PushReset()
		return c.adapter.Subscribe(conn)
	}

	conn.Dial(c.adapter.Address(), nil)
	c.conn = conn

	go c.read()
	return nil
}

func (c *StreamClient) Close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

func (c *StreamClient) read() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		msgType, msg, err := c.conn.ReadMessage()
		if err != nil {
			if config.DebugMode {
				logger.Printf("%s: error while reading from connection: %v", c.adapter.ID(), err)
			}
			time.Sleep(readErrorBackoff)
			continue
		}
		if msgType != websocket.TextMessage {
			continue
		}

		c.sink.Push(msg, Timestamp(time.Now()))
	}
}

// Timestamp converts t to fractional seconds since the epoch.
func Timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
