package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notification/pkg/logger"
)

// EventKind identifies what happened to a message.
type EventKind string

const (
	// EventFlash is published for messages deferred to the next request.
	EventFlash EventKind = "notification.flash"
	// EventAdded is published for messages stored in the bag.
	EventAdded EventKind = "notification.added"
)

// EventName returns the published name, e.g. "notification.flash: default".
func EventName(kind EventKind, container string) string {
	return fmt.Sprintf("%s: %s", kind, container)
}

// Event is published by a Bag for every accepted message.
type Event struct {
	Name      string
	Kind      EventKind
	Container string
	Bag       *Bag
	Message   *Message
}

// Dispatcher receives bag events. Dispatch is fire-and-forget.
type Dispatcher interface {
	Dispatch(e Event)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(e Event)

func (f DispatcherFunc) Dispatch(e Event) {
	f(e)
}

// NopDispatcher drops every event.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(Event) {}

// MultiDispatcher forwards each event to all dispatchers in order.
// A panicking dispatcher is logged and does not stop the others.
type MultiDispatcher struct {
	dispatchers []Dispatcher
	logger      *slog.Logger
}

// MultiDispatcherOption configures a MultiDispatcher.
type MultiDispatcherOption func(*MultiDispatcher)

// WithMultiDispatcherLogger sets the logger for the MultiDispatcher.
func WithMultiDispatcherLogger(logger *slog.Logger) MultiDispatcherOption {
	return func(m *MultiDispatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMultiDispatcher creates a dispatcher fanning out to dispatchers; nil entries are skipped.
func NewMultiDispatcher(dispatchers []Dispatcher, opts ...MultiDispatcherOption) *MultiDispatcher {
	m := &MultiDispatcher{
		dispatchers: make([]Dispatcher, 0, len(dispatchers)),
		logger:      slog.Default(),
	}
	for _, d := range dispatchers {
		if d != nil {
			m.dispatchers = append(m.dispatchers, d)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MultiDispatcher) Dispatch(e Event) {
	for i, d := range m.dispatchers {
		m.dispatchOne(i, d, e)
	}
}

func (m *MultiDispatcher) dispatchOne(i int, d Dispatcher, e Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.LogAttrs(context.Background(), slog.LevelError, "notification dispatcher panicked",
				logger.Event(e.Name),
				logger.Container(e.Container),
				slog.Int("dispatcher_index", i),
				slog.Any("panic", r),
			)
		}
	}()
	d.Dispatch(e)
}
