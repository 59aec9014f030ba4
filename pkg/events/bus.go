package events

import (
	"slices"
	"sync"

	"github.com/jscyril/vinyl_player/api"
)

const (
	typedBuffer = 16
	// Load notifications arrive in a burst at startup, one per track.
	allBuffer = 256
)

type subscription struct {
	ch    chan api.Event
	types []api.EventType // nil receives every type
}

func (s subscription) wants(t api.EventType) bool {
	return s.types == nil || slices.Contains(s.types, t)
}

// EventBus fans events out to subscriber channels without ever blocking the
// publisher. A full subscriber misses the event.
type EventBus struct {
	mu     sync.RWMutex
	subs   []subscription
	closed bool
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe returns a channel that receives only the given event types.
func (b *EventBus) Subscribe(types ...api.EventType) <-chan api.Event {
	if len(types) == 0 {
		return b.SubscribeAll()
	}
	return b.add(subscription{ch: make(chan api.Event, typedBuffer), types: types})
}

// SubscribeAll returns a channel that receives every event.
func (b *EventBus) SubscribeAll() <-chan api.Event {
	return b.add(subscription{ch: make(chan api.Event, allBuffer)})
}

func (b *EventBus) add(s subscription) <-chan api.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(s.ch)
	} else {
		b.subs = append(b.subs, s)
	}
	return s.ch
}

// Publish is safe to call from any goroutine, including after Close.
func (b *EventBus) Publish(event api.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs {
		if !s.wants(event.Type) {
			continue
		}
		select {
		case s.ch <- event:
		default:
		}
	}
}

// Unsubscribe detaches ch. The channel is left open so a reader can drain it.
func (b *EventBus) Unsubscribe(ch <-chan api.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool {
		return s.ch == ch
	})
}

// Close closes every subscriber channel. Later subscriptions get a closed
// channel and later publishes are dropped.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	b.closed = true
}
