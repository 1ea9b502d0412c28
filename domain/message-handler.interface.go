package domain

import (
	"context"
	"errors"
)

var ErrNotImplemented = errors.New("message handler is not implemented")

// MessageHandler decodes raw exchange messages into feed events. Every
// exchange adapter supplies one.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg []byte, timestamp float64) error
}

// JSONWriter is the write side of a stream connection.
type JSONWriter interface {
	WriteJSON(v interface{}) error
}

// FeedAdapter is an exchange-specific feed: it knows the endpoint, how to
// subscribe on a fresh connection and how to decode what comes back.
type FeedAdapter interface {
	MessageHandler
	ID() string
	Address() string
	Subscribe(conn JSONWriter) error
}

// StateResetter is implemented by handlers that keep per-connection state
// such as books or sequence numbers. ResetState runs on the goroutine that
// processes the handler's messages, in order with them.
type StateResetter interface {
	ResetState()
}
