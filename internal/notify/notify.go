// Package notify provides an explicit publish/subscribe notification service.
// Components publish user-facing events; a top-level boundary (the CLI)
// subscribes and presents them. This replaces ambient global notification
// state with an injected dependency.
package notify

import (
	"sync"
)

// Level classifies a notification for presentation.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one user-facing event.
type Notification struct {
	Level   Level
	Message string
}

const subscriberBuffer = 16

// Bus fans notifications out to subscribers. Publish never blocks: when a
// subscriber's buffer is full its oldest pending notification is dropped.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Notification
	nextID int
	closed bool
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Notification)}
}

// Publish delivers a notification to every subscriber.
func (b *Bus) Publish(level Level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	n := Notification{Level: level, Message: message}
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- n
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel function removes
// the subscription and closes its channel.
func (b *Bus) Subscribe() (<-chan Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Notification, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
