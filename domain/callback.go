package domain

import (
	"context"
	"errors"
)

var ErrRegistryFrozen = errors.New("callback registry is frozen")

type Callback func(ctx context.Context, event Event) error

// CallbackRegistry fans events out to the callbacks registered for their kind.
// Registration happens while a feed is configured; Freeze ends it.
type CallbackRegistry struct {
	callbacks map[EventKind][]Callback
	frozen    bool
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{
		callbacks: make(map[EventKind][]Callback),
	}
}

func (r *CallbackRegistry) Register(kind EventKind, callbacks ...Callback) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	for _, cb := range callbacks {
		if cb == nil {
			continue
		}
		r.callbacks[kind] = append(r.callbacks[kind], cb)
	}
	return nil
}

func (r *CallbackRegistry) Freeze() {
	r.frozen = true
}

func (r *CallbackRegistry) Has(kind EventKind) bool {
	return len(r.callbacks[kind]) > 0
}

func (r *CallbackRegistry) Len(kind EventKind) int {
	return len(r.callbacks[kind])
}

// Dispatch calls every callback of the event's kind in registration order,
// each one returning before the next starts. The first error is returned as
// is and the remaining callbacks are not called.
func (r *CallbackRegistry) Dispatch(ctx context.Context, event Event) error {
	for _, cb := range r.callbacks[event.Kind()] {
		if err := cb(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
