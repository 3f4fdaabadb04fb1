package flash

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/notification/pkg/logger"
	"github.com/dmitrymomot/notification/pkg/notification"
)

type middlewareOptions struct {
	logger      *slog.Logger
	dispatchers []notification.Dispatcher
	perRequest  []func(*http.Request) notification.Dispatcher
}

// Option configures Middleware.
type Option func(*middlewareOptions)

// WithLogger sets the logger for store errors and the request managers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *middlewareOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDispatchers adds dispatchers receiving the events of every request
// manager, e.g. a shared notification.BroadcastDispatcher.
func WithDispatchers(d ...notification.Dispatcher) Option {
	return func(o *middlewareOptions) {
		o.dispatchers = append(o.dispatchers, d...)
	}
}

// WithRequestDispatcher adds a dispatcher resolved for each request, e.g. a
// BroadcastDispatcher scope keyed by the client's session. A nil result is
// skipped.
func WithRequestDispatcher(fn func(r *http.Request) notification.Dispatcher) Option {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.perRequest = append(o.perRequest, fn)
		}
	}
}

// Middleware puts a notification.Manager built from cfg into the request
// context, restores the items flashed by the previous request and saves the
// ones flashed by this request. Store errors are logged, the request is
// never failed because of them.
func Middleware(store Store, cfg notification.Config, opts ...Option) func(http.Handler) http.Handler {
	o := middlewareOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With(logger.Component("flash"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fw := &flashWriter{
				ResponseWriter: w,
				request:        r,
				store:          store,
				logger:         log,
			}

			dispatchers := append([]notification.Dispatcher{fw}, o.dispatchers...)
			for _, fn := range o.perRequest {
				if d := fn(r); d != nil {
					dispatchers = append(dispatchers, d)
				}
			}
			m := notification.New(cfg,
				notification.WithManagerDispatcher(notification.NewMultiDispatcher(dispatchers,
					notification.WithMultiDispatcherLogger(log),
				)),
				notification.WithManagerLogger(o.logger),
			)

			items, err := store.Load(w, r)
			if err != nil {
				log.ErrorContext(r.Context(), "failed to load flashed notifications", logger.Error(err))
			}
			restore(m, items)

			next.ServeHTTP(fw, r.WithContext(notification.WithContext(r.Context(), m)))
			fw.save()
		})
	}
}

// restore re-adds items as instant messages without publishing events.
func restore(m *notification.Manager, items []Item) {
	for _, it := range items {
		bag := m.Container(it.Container)
		d := bag.Dispatcher()
		bag.SetDispatcher(nil)
		it.Restore(m)
		bag.SetDispatcher(d)
	}
}

// flashWriter collects flash events and saves them before the response
// header is sent, since stores write cookies.
type flashWriter struct {
	http.ResponseWriter
	request *http.Request
	store   Store
	logger  *slog.Logger

	mu      sync.Mutex
	items   []Item
	written bool
}

func (fw *flashWriter) Dispatch(e notification.Event) {
	if e.Kind != notification.EventFlash || e.Message == nil {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.written {
		fw.logger.WarnContext(fw.request.Context(), "notification flashed after response was written, dropped",
			logger.Event(e.Name),
			logger.Container(e.Container),
		)
		return
	}
	fw.items = append(fw.items, NewItem(e.Container, e.Message))
}

func (fw *flashWriter) WriteHeader(code int) {
	fw.save()
	fw.ResponseWriter.WriteHeader(code)
}

func (fw *flashWriter) Write(b []byte) (int, error) {
	fw.save()
	return fw.ResponseWriter.Write(b)
}

func (fw *flashWriter) Flush() {
	fw.save()
	if f, ok := fw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (fw *flashWriter) Unwrap() http.ResponseWriter {
	return fw.ResponseWriter
}

// save persists the collected items once.
func (fw *flashWriter) save() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.written {
		return
	}
	fw.written = true

	if len(fw.items) == 0 {
		return
	}
	if err := fw.store.Save(fw.ResponseWriter, fw.request, fw.items); err != nil {
		fw.logger.ErrorContext(fw.request.Context(), "failed to save flashed notifications",
			logger.Count(len(fw.items)),
			logger.Error(err),
		)
	}
}
