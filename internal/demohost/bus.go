package demohost

import (
	"sync"

	"github.com/videoforge/videoforge/internal/host"
)

// Bus is an in-memory host.EventBus.
type Bus struct {
	// mu guards the subscriber table.
	mu sync.Mutex
	// nextID assigns subscriber handles.
	nextID int
	// subscribers maps event kind to subscriber callbacks by handle.
	subscribers map[host.EventKind]map[int]func(host.Event)
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[host.EventKind]map[int]func(host.Event))}
}

// Subscribe registers a callback for one event kind.
func (b *Bus) Subscribe(kind host.EventKind, fn func(host.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	byHandle, ok := b.subscribers[kind]
	if !ok {
		byHandle = make(map[int]func(host.Event))
		b.subscribers[kind] = byHandle
	}
	handle := b.nextID
	b.nextID++
	byHandle[handle] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers[kind], handle)
		})
	}
}

// Publish delivers an event to all subscribers of its kind.
func (b *Bus) Publish(event host.Event) {
	b.mu.Lock()
	callbacks := make([]func(host.Event), 0, len(b.subscribers[event.Kind]))
	for _, fn := range b.subscribers[event.Kind] {
		callbacks = append(callbacks, fn)
	}
	b.mu.Unlock()
	// Callbacks run outside the lock so they may resubscribe or unsubscribe.
	for _, fn := range callbacks {
		fn(event)
	}
}
