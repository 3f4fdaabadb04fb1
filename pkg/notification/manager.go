package notification

import "log/slog"

// Manager owns the named bags (containers) of one request. Containers are
// created on first use from Config.
type Manager struct {
	config     Config
	bags       map[string]*Bag
	order      []string
	dispatcher Dispatcher
	logger     *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerDispatcher sets the dispatcher handed to every container.
func WithManagerDispatcher(d Dispatcher) ManagerOption {
	return func(m *Manager) {
		if d != nil {
			m.dispatcher = d
		}
	}
}

// WithManagerLogger sets the logger for the Manager and its containers.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a manager. An empty DefaultContainer falls back to "default".
func New(cfg Config, opts ...ManagerOption) *Manager {
	if cfg.DefaultContainer == "" {
		cfg.DefaultContainer = DefaultConfig().DefaultContainer
	}

	m := &Manager{
		config:     cfg,
		bags:       make(map[string]*Bag),
		dispatcher: NopDispatcher{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Container returns the named bag, creating it if needed. "" is the default container.
func (m *Manager) Container(name string) *Bag {
	if name == "" {
		name = m.config.DefaultContainer
	}
	if b, ok := m.bags[name]; ok {
		return b
	}

	cc := m.config.container(name)
	b := NewBag(name,
		WithDispatcher(m.dispatcher),
		WithLogger(m.logger),
		WithTypes(cc.Types...),
		WithDefaultFormat(cc.Format),
		WithTypeFormats(cc.Formats),
	)
	m.bags[name] = b
	m.order = append(m.order, name)
	return b
}

func (m *Manager) Default() *Bag {
	return m.Container("")
}

// Has reports whether the container was already created.
func (m *Manager) Has(name string) bool {
	_, ok := m.bags[name]
	return ok
}

// Names returns created containers in creation order.
func (m *Manager) Names() []string {
	return append([]string{}, m.order...)
}

// Call runs a dynamic operation on the default container.
func (m *Manager) Call(name string, args ...any) (any, error) {
	return m.Default().Call(name, args...)
}

// Count returns the number of stored messages across containers.
func (m *Manager) Count() int {
	n := 0
	for _, b := range m.bags {
		n += b.Count()
	}
	return n
}

// Snapshots serializes every created container in creation order.
func (m *Manager) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.bags[name].Snapshot())
	}
	return out
}

func (m *Manager) Config() Config {
	return m.config
}
