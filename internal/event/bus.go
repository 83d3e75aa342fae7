package event

import "sync"

const subscriberBuffer = 64

// InMemoryBus fans events out to in-process subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses that event, which is fine
// for a live ticker where only the latest state matters.
type InMemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
}

func NewBus() *InMemoryBus {
	return &InMemoryBus{subs: make(map[int]chan Event)}
}

func (b *InMemoryBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *InMemoryBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			close(ch)
			delete(b.subs, id)
		}
	}

	return ch, unsubscribe
}
