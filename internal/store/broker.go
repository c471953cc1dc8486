package store

import (
	"sync"
	"time"
)

type subscription struct {
	id int
	fn Listener
}

// broker fans events out to subscribers in subscription order.
type broker struct {
	mu   sync.Mutex
	next int
	subs []subscription
	now  func() time.Time
}

func newBroker() *broker {
	return &broker{now: time.Now}
}

// Subscribe registers l and returns its cancel func.
func (b *broker) Subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscription{id: id, fn: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish delivers an event to the current subscribers. It must be called
// without the store's lock held.
func (b *broker) publish(kind EventKind, id string) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	ev := Event{Kind: kind, ID: id, At: b.now()}
	for _, s := range subs {
		s.fn(ev)
	}
}
