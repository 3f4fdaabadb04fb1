package view

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/notification/pkg/logger"
	"github.com/dmitrymomot/notification/pkg/notification"
)

type streamOptions struct {
	mode   datastar.ElementPatchMode
	scope  func(*http.Request) string
	logger *slog.Logger
}

// StreamOption configures Stream.
type StreamOption func(*streamOptions)

// WithPatchMode sets how notices are patched into the target. Default is append.
func WithPatchMode(mode datastar.ElementPatchMode) StreamOption {
	return func(o *streamOptions) {
		o.mode = mode
	}
}

// WithStreamScope subscribes each connection to the scope returned by fn,
// matching notices published through BroadcastDispatcher.Scope.
func WithStreamScope(fn func(r *http.Request) string) StreamOption {
	return func(o *streamOptions) {
		o.scope = fn
	}
}

// WithStreamLogger sets the logger for stream errors.
func WithStreamLogger(logger *slog.Logger) StreamOption {
	return func(o *streamOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Stream serves a datastar SSE connection patching every notice of container
// into the element matched by selector until the client disconnects.
func Stream(d *notification.BroadcastDispatcher, container, selector string, opts ...StreamOption) http.HandlerFunc {
	o := streamOptions{
		mode:   datastar.ElementPatchModeAppend,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var scope string
		if o.scope != nil {
			scope = o.scope(r)
		}
		sub := d.SubscribeScope(ctx, scope, container)
		defer func() { _ = sub.Close() }()

		sse := datastar.NewSSE(w, r)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Receive(ctx):
				if !ok {
					return
				}
				err := sse.PatchElementTempl(Notice(msg.Data),
					datastar.WithSelector(selector),
					datastar.WithMode(o.mode),
				)
				if err != nil {
					o.logger.WarnContext(ctx, "notification stream closed",
						logger.Container(container),
						logger.Event(msg.Data.Name),
						logger.Error(err),
					)
					return
				}
			}
		}
	}
}
