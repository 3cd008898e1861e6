package stream

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription receives broadcast values on C until it is unsubscribed.
type Subscription[T any] struct {
	ID   uuid.UUID
	ch   chan T
	once sync.Once
}

func (s *Subscription[T]) C() <-chan T { return s.ch }

// Hub fans values out to subscribers. Broadcast never blocks: a subscriber
// whose buffer is full misses the value.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription[T]

	dropped atomic.Int64
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uuid.UUID]*Subscription[T])}
}

func (h *Hub[T]) Subscribe(buffer int) *Subscription[T] {
	sub := &Subscription[T]{ID: uuid.New(), ch: make(chan T, buffer)}
	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub
}

// Unsubscribe closes the subscription channel. Calling it again is a no-op.
func (h *Hub[T]) Unsubscribe(sub *Subscription[T]) {
	h.mu.Lock()
	delete(h.subs, sub.ID)
	h.mu.Unlock()
	sub.once.Do(func() { close(sub.ch) })
}

func (h *Hub[T]) Broadcast(value T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- value:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped counts values lost to full subscriber buffers.
func (h *Hub[T]) Dropped() int64 {
	return h.dropped.Load()
}

// Close unsubscribes everyone.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[uuid.UUID]*Subscription[T])
	h.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() { close(sub.ch) })
	}
}
