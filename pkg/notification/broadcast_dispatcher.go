package notification

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/notification/pkg/broadcast"
	"github.com/dmitrymomot/notification/pkg/cache"
	"github.com/dmitrymomot/notification/pkg/logger"
)

// Notice is the detached copy of an Event sent to live subscribers.
type Notice struct {
	Name      string      `json:"name"`
	Kind      EventKind   `json:"kind"`
	Container string      `json:"container"`
	Message   MessageData `json:"message"`
	Rendered  string      `json:"rendered"`
}

// NewNotice copies e, rendering the message with the bag's format resolution.
func NewNotice(e Event) Notice {
	n := Notice{
		Name:      e.Name,
		Kind:      e.Kind,
		Container: e.Container,
	}
	if e.Message != nil {
		n.Message = e.Message.Data()
		if e.Bag != nil {
			n.Rendered = e.Bag.RenderMessage(e.Message, "")
		} else {
			n.Rendered = e.Message.Render()
		}
	}
	return n
}

// BroadcastDispatcher publishes events to per-container broadcasters so
// transports (SSE, WebSocket) can stream them. Channels can be narrowed to a
// scope with Scope and SubscribeScope. It is safe for concurrent use
// and is meant to be shared by all requests.
type BroadcastDispatcher struct {
	broadcasters    *cache.LRUCache[string, broadcast.Broadcaster[Notice]]
	bufferSize      int
	maxBroadcasters int
	kinds           []EventKind
	logger          *slog.Logger
}

// BroadcastDispatcherOption configures a BroadcastDispatcher.
type BroadcastDispatcherOption func(*BroadcastDispatcher)

// WithBroadcastLogger sets the logger for the BroadcastDispatcher.
func WithBroadcastLogger(logger *slog.Logger) BroadcastDispatcherOption {
	return func(d *BroadcastDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMaxBroadcasters bounds the number of container broadcasters; the least
// recently used one is closed when the limit is reached. Default is 1000.
func WithMaxBroadcasters(limit int) BroadcastDispatcherOption {
	return func(d *BroadcastDispatcher) {
		if limit > 0 {
			d.maxBroadcasters = limit
		}
	}
}

// WithBroadcastKinds limits the published event kinds. Default is EventAdded.
func WithBroadcastKinds(kinds ...EventKind) BroadcastDispatcherOption {
	return func(d *BroadcastDispatcher) {
		if len(kinds) > 0 {
			d.kinds = kinds
		}
	}
}

// NewBroadcastDispatcher creates a dispatcher whose subscribers buffer bufferSize notices.
func NewBroadcastDispatcher(bufferSize int, opts ...BroadcastDispatcherOption) *BroadcastDispatcher {
	d := &BroadcastDispatcher{
		bufferSize:      bufferSize,
		maxBroadcasters: 1000,
		kinds:           []EventKind{EventAdded},
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.broadcasters = cache.NewLRUCache[string, broadcast.Broadcaster[Notice]](d.maxBroadcasters)
	d.broadcasters.SetEvictCallback(func(key string, b broadcast.Broadcaster[Notice]) {
		if err := b.Close(); err != nil {
			d.logger.LogAttrs(context.Background(), slog.LevelError, "failed to close evicted broadcaster",
				logger.Container(key),
				logger.Error(err),
			)
		}
	})
	return d
}

// Dispatch publishes e to the unscoped channel of its container.
func (d *BroadcastDispatcher) Dispatch(e Event) {
	d.publish("", e)
}

// Scope returns a Dispatcher publishing to the channels of one scope, such as
// a session or client id. Only SubscribeScope with the same scope receives
// those notices. An empty scope is the unscoped channel.
func (d *BroadcastDispatcher) Scope(scope string) Dispatcher {
	return DispatcherFunc(func(e Event) {
		d.publish(scope, e)
	})
}

// Subscribe returns a subscriber for unscoped notices of the named container.
func (d *BroadcastDispatcher) Subscribe(ctx context.Context, container string) broadcast.Subscriber[Notice] {
	return d.SubscribeScope(ctx, "", container)
}

// SubscribeScope returns a subscriber for notices of the named container
// published through Scope(scope).
func (d *BroadcastDispatcher) SubscribeScope(ctx context.Context, scope, container string) broadcast.Subscriber[Notice] {
	return d.broadcaster(channelKey(scope, container)).Subscribe(ctx)
}

func (d *BroadcastDispatcher) publish(scope string, e Event) {
	if !slices.Contains(d.kinds, e.Kind) {
		return
	}

	ctx := context.Background()
	key := channelKey(scope, e.Container)
	if err := d.broadcaster(key).Broadcast(ctx, broadcast.Message[Notice]{Data: NewNotice(e)}); err != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "failed to broadcast notification",
			logger.Event(e.Name),
			logger.Container(e.Container),
			logger.Error(err),
		)
	}
}

// Close closes all container broadcasters.
func (d *BroadcastDispatcher) Close() error {
	d.broadcasters.Clear()
	return nil
}

func (d *BroadcastDispatcher) broadcaster(key string) broadcast.Broadcaster[Notice] {
	return d.broadcasters.GetOrCreate(key, func() broadcast.Broadcaster[Notice] {
		return broadcast.NewMemoryBroadcaster[Notice](d.bufferSize)
	})
}

func channelKey(scope, container string) string {
	if scope == "" {
		return container
	}
	return scope + "\x00" + container
}
