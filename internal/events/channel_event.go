package events

import (
	"sync"
)

type subscriber[S any] struct {
	id   uint64
	sink S
}

// replayBox remembers the most recent Notify value so late listeners can
// be handed the current state instead of waiting for the next change.
type replayBox[T any] struct {
	enabled bool
	value   T
	valid   bool
}

func (r *replayBox[T]) store(v T) {
	if !r.enabled {
		return
	}
	r.value = v
	r.valid = true
}

func (r *replayBox[T]) take() (T, bool) {
	if !r.enabled || !r.valid {
		var zero T
		return zero, false
	}
	return r.value, true
}

// ChannelEvent fans a value out to subscriber channels.
// Sends never block: a subscriber whose channel is full misses that value.
type ChannelEvent[T any] struct {
	mu     sync.Mutex
	subs   []subscriber[chan<- T]
	nextID uint64
	replay replayBox[T]
}

// NewChannelEvent creates a ChannelEvent. With replayLastOnListen set,
// a listener registered after the first Notify immediately receives the
// most recent value.
func NewChannelEvent[T any](replayLastOnListen bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{replay: replayBox[T]{enabled: replayLastOnListen}}
}

// Listen registers ch to receive every subsequent Notify value.
// The returned function unregisters the channel.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber[chan<- T]{id: id, sink: ch})
	last, ok := e.replay.take()
	e.mu.Unlock()

	if ok {
		select {
		case ch <- last:
		default:
		}
	}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i := range e.subs {
			if e.subs[i].id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify sends value to every registered channel without blocking.
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.replay.store(value)
	targets := make([]chan<- T, len(e.subs))
	for i, s := range e.subs {
		targets[i] = s.sink
	}
	e.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- value:
		default:
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *ChannelEvent[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
