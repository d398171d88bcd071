package events

import (
	"sync"
)

// CallbackEvent fans a value out to subscriber callbacks. Callbacks run
// on the notifying goroutine, outside the internal lock, so a callback
// may itself Listen or Notify without deadlocking.
type CallbackEvent[T any] struct {
	mu     sync.Mutex
	subs   []subscriber[func(T)]
	nextID uint64
	replay replayBox[T]
}

// NewCallbackEvent creates a CallbackEvent. With replayLastOnListen set,
// a callback registered after the first Notify is invoked immediately
// with the most recent value.
func NewCallbackEvent[T any](replayLastOnListen bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{replay: replayBox[T]{enabled: replayLastOnListen}}
}

// Listen registers callback to run on every subsequent Notify.
// The returned function unregisters it.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber[func(T)]{id: id, sink: callback})
	last, ok := e.replay.take()
	e.mu.Unlock()

	if ok {
		callback(last)
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

// Notify invokes every registered callback with value.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.replay.store(value)
	targets := make([]func(T), len(e.subs))
	for i, s := range e.subs {
		targets[i] = s.sink
	}
	e.mu.Unlock()

	for _, cb := range targets {
		cb(value)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *CallbackEvent[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
