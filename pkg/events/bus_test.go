package events

import (
	"testing"

	"github.com/jscyril/vinyl_player/api"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	loaded := bus.Subscribe(api.EventTrackLoaded)
	all := bus.SubscribeAll()

	bus.Publish(api.Event{Type: api.EventTrackLoaded, Index: 2})
	bus.Publish(api.Event{Type: api.EventLoadFailed, Index: 3})

	if ev := <-loaded; ev.Index != 2 {
		t.Errorf("loaded subscriber got index %d, want 2", ev.Index)
	}
	select {
	case ev := <-loaded:
		t.Errorf("typed subscriber received unrelated event %+v", ev)
	default:
	}

	first, second := <-all, <-all
	if first.Type != api.EventTrackLoaded || second.Type != api.EventLoadFailed {
		t.Errorf("SubscribeAll order = %v, %v", first.Type, second.Type)
	}
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(api.EventLoadFailed)

	for i := 0; i < 100; i++ {
		bus.Publish(api.Event{Type: api.EventLoadFailed, Index: i})
	}
	if got := len(ch); got != typedBuffer {
		t.Errorf("buffered %d events, want %d", got, typedBuffer)
	}
	if ev := <-ch; ev.Index != 0 {
		t.Errorf("first kept event = %d, want the oldest", ev.Index)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(api.EventTrackLoaded, api.EventLoadFailed)
	bus.Unsubscribe(ch)

	bus.Publish(api.Event{Type: api.EventTrackLoaded})
	select {
	case ev := <-ch:
		t.Errorf("unsubscribed channel received %+v", ev)
	default:
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	bus := NewEventBus()
	ch := bus.SubscribeAll()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
	// Publishing after close must not panic.
	bus.Publish(api.Event{Type: api.EventTrackLoaded})
}

func TestSubscribeAfterClose(t *testing.T) {
	bus := NewEventBus()
	bus.Close()
	bus.Close()

	if _, ok := <-bus.SubscribeAll(); ok {
		t.Error("subscription after close should be closed")
	}
}
