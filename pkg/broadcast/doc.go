// Package broadcast fans messages out to in-process subscribers.
//
// The notification package uses it to push freshly added messages to live
// views (see notification.BroadcastDispatcher). Delivery never blocks the
// publisher: a subscriber whose buffer is full misses the message and is
// dropped.
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	sub := b.Subscribe(ctx)
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//	msg := <-sub.Receive(ctx)
package broadcast
