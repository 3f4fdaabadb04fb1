package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notification/pkg/broadcast"
)

func TestMemoryBroadcaster_Delivers(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](4)
	defer b.Close()

	ctx := context.Background()
	sub1 := b.Subscribe(ctx)
	sub2 := b.Subscribe(ctx)
	assert.Equal(t, 2, b.Subscribers())

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"}))

	for _, sub := range []broadcast.Subscriber[string]{sub1, sub2} {
		select {
		case msg := <-sub.Receive(ctx):
			assert.Equal(t, "hello", msg.Data)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestMemoryBroadcaster_ContextCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-sub.Receive(ctx)
	assert.False(t, open)
}

func TestMemoryBroadcaster_SlowSubscriberDropped(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx := context.Background()
	b.Subscribe(ctx)

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	ctx := context.Background()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, open := <-sub.Receive(ctx)
	assert.False(t, open)

	late := b.Subscribe(ctx)
	_, open = <-late.Receive(ctx)
	assert.False(t, open)
	assert.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
}
