package eventbus

import (
	"sync"
	"sync/atomic"
)

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// DefaultBuffer is the per-subscriber channel capacity used by New.
const DefaultBuffer = 16

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation using fan-out channels.
// Publishing never blocks: an event is dropped for a subscriber whose buffer
// is full, and counted in Dropped.
type Bus struct {
	mu      sync.RWMutex
	subs    []chan Event
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

// New creates a Bus with DefaultBuffer slots per subscriber.
func New() *Bus { return NewWithBuffer(DefaultBuffer) }

// NewWithBuffer creates a Bus with the given per-subscriber capacity.
func NewWithBuffer(size int) *Bus {
	if size < 0 {
		size = 0
	}
	return &Bus{buffer: size}
}

// Publish sends the event to all subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was
// not keeping up.
func (b *Bus) Dropped() uint64 { return b.dropped.Load() }

// Subscribe registers a new subscriber and returns its channel. Subscribing
// to a closed bus returns a closed channel.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes all subscriber channels. It is safe to call more than once.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
