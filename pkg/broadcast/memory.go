package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster. Slow subscribers are
// unsubscribed instead of blocking Broadcast. Safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subs   map[*subscriber[T]]struct{}
	size   int
	closed bool
	mu     sync.RWMutex
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer size
// messages (at least one).
func NewMemoryBroadcaster[T any](size int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subs: make(map[*subscriber[T]]struct{}),
		size: max(size, 1),
	}
}

func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.size)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			b.unsubscribe(sub)
		}()
	}
	return sub
}

func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}
	for sub := range b.subs {
		if !sub.send(msg) {
			go b.unsubscribe(sub)
		}
	}
	return nil
}

// Subscribers returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		_ = sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	_ = sub.Close()
}
