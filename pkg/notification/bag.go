package notification

import (
	"cmp"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/dmitrymomot/notification/pkg/logger"
)

// Bag is a named container of typed messages and their formats.
// A Bag belongs to a single request and is not safe for concurrent use.
type Bag struct {
	name          string
	types         []string
	defaultFormat string
	formats       map[string]string
	messages      []*Message
	grouping      []string
	dispatcher    Dispatcher
	logger        *slog.Logger
}

// BagOption configures a Bag.
type BagOption func(*Bag)

// WithDispatcher sets the event collaborator. A nil dispatcher disables events.
func WithDispatcher(d Dispatcher) BagOption {
	return func(b *Bag) {
		b.SetDispatcher(d)
	}
}

// WithLogger sets the logger for the Bag.
func WithLogger(logger *slog.Logger) BagOption {
	return func(b *Bag) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTypes registers message types.
func WithTypes(types ...string) BagOption {
	return func(b *Bag) {
		b.AddType(types...)
	}
}

// WithDefaultFormat sets the fallback format.
func WithDefaultFormat(format string) BagOption {
	return func(b *Bag) {
		b.defaultFormat = format
	}
}

// WithTypeFormats sets per-type formats. Types must be registered first.
func WithTypeFormats(formats map[string]string) BagOption {
	return func(b *Bag) {
		b.SetFormats(formats)
	}
}

// NewBag creates an empty bag with no registered types.
func NewBag(name string, opts ...BagOption) *Bag {
	b := &Bag{
		name:       name,
		formats:    make(map[string]string),
		dispatcher: NopDispatcher{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bag) Name() string { return b.name }

func (b *Bag) Dispatcher() Dispatcher { return b.dispatcher }

func (b *Bag) SetDispatcher(d Dispatcher) *Bag {
	if d == nil {
		d = NopDispatcher{}
	}
	b.dispatcher = d
	return b
}

// AddType registers types in first-seen order. Duplicates and empty names are ignored.
func (b *Bag) AddType(types ...string) *Bag {
	for _, t := range types {
		if t == "" || b.TypeIsAvailable(t) {
			continue
		}
		b.types = append(b.types, t)
	}
	return b
}

func (b *Bag) Types() []string {
	return append([]string{}, b.types...)
}

func (b *Bag) TypeIsAvailable(typ string) bool {
	return slices.Contains(b.types, typ)
}

// ClearTypes forgets all types. Stored messages and formats are kept.
func (b *Bag) ClearTypes() *Bag {
	b.types = nil
	return b
}

func (b *Bag) SetDefaultFormat(format string) *Bag {
	b.defaultFormat = format
	return b
}

// DefaultFormat returns the fallback format and whether one is set.
func (b *Bag) DefaultFormat() (string, bool) {
	return b.defaultFormat, b.defaultFormat != ""
}

// SetFormat stores a per-type format. Unregistered types are ignored.
func (b *Bag) SetFormat(typ, format string) *Bag {
	if b.TypeIsAvailable(typ) {
		b.formats[typ] = format
	}
	return b
}

func (b *Bag) SetFormats(formats map[string]string) *Bag {
	for typ, format := range formats {
		b.SetFormat(typ, format)
	}
	return b
}

// Format resolves the per-type format, then the default format.
// The boolean is false when neither is configured.
func (b *Bag) Format(typ string) (string, bool) {
	if f, ok := b.formats[typ]; ok {
		return f, true
	}
	return b.DefaultFormat()
}

func (b *Bag) ClearFormat(typ string) *Bag {
	delete(b.formats, typ)
	return b
}

// ClearFormats removes per-type formats; the default format is kept.
func (b *Bag) ClearFormats() *Bag {
	clear(b.formats)
	return b
}

// Add creates a message from text and adds it. Without an explicit format the
// message gets the format resolved for typ at this moment.
func (b *Bag) Add(typ, text string, flashable bool, opts ...MessageOption) *Bag {
	if !b.accepts(typ) {
		return b
	}

	m := NewMessage(text, typ, append([]MessageOption{WithFlashable(flashable)}, opts...)...)
	if m.format == "" {
		if f, ok := b.Format(typ); ok {
			m.format = f
		}
	}
	return b.insert(typ, m)
}

// AddMessage adds a prepared message under typ, overriding its type. Options
// are applied to the message; its own flashable flag decides whether it is
// flashed or stored. A message already stored in the bag is not added again.
func (b *Bag) AddMessage(typ string, m *Message, opts ...MessageOption) *Bag {
	if m == nil || !b.accepts(typ) {
		return b
	}
	if slices.Contains(b.messages, m) {
		b.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification message already stored, skipped",
			logger.Container(b.name),
			logger.NotificationType(typ),
		)
		return b
	}
	for _, opt := range opts {
		opt(m)
	}
	return b.insert(typ, m)
}

// Flash adds a message deferred to the next request.
func (b *Bag) Flash(typ, text string, opts ...MessageOption) *Bag {
	return b.Add(typ, text, true, opts...)
}

// Instant adds a message visible in the current request.
func (b *Bag) Instant(typ, text string, opts ...MessageOption) *Bag {
	return b.Add(typ, text, false, opts...)
}

func (b *Bag) accepts(typ string) bool {
	if b.TypeIsAvailable(typ) {
		return true
	}
	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification type is not registered, message dropped",
		logger.Container(b.name),
		logger.NotificationType(typ),
	)
	return false
}

func (b *Bag) insert(typ string, m *Message) *Bag {
	m.SetType(typ)

	if m.IsFlashable() {
		b.publish(EventFlash, m)
		return b
	}

	if p, ok := m.Position(); ok {
		b.makeRoom(p)
	}
	b.messages = append(b.messages, m)
	b.publish(EventAdded, m)
	return b
}

// makeRoom moves the occupant of position p, and recursively its successors,
// one slot up. Positions saturate at math.MaxInt: the occupant of the last
// slot stays and shares it with the newcomer.
func (b *Bag) makeRoom(p int) {
	if p == math.MaxInt {
		return
	}
	occupant, ok := b.AtPosition(p)
	if !ok {
		return
	}
	b.makeRoom(p + 1)
	occupant.SetPosition(p + 1)
}

func (b *Bag) publish(kind EventKind, m *Message) {
	b.dispatcher.Dispatch(Event{
		Name:      EventName(kind, b.name),
		Kind:      kind,
		Container: b.name,
		Bag:       b,
		Message:   m,
	})
}

// All returns stored messages in canonical order: positioned messages take
// their slot, unpositioned ones fill the free slots in insertion order.
func (b *Bag) All() []*Message {
	var positioned, free []*Message
	for _, m := range b.messages {
		if _, ok := m.Position(); ok {
			positioned = append(positioned, m)
		} else {
			free = append(free, m)
		}
	}
	slices.SortStableFunc(positioned, func(x, y *Message) int {
		px, _ := x.Position()
		py, _ := y.Position()
		return cmp.Compare(px, py)
	})

	out := make([]*Message, 0, len(b.messages))
	slot, k, u := 0, 0, 0
	for k < len(positioned) || u < len(free) {
		if k < len(positioned) {
			p, _ := positioned[k].Position()
			if p <= slot || u == len(free) {
				out = append(out, positioned[k])
				if slot = max(slot, p); slot < math.MaxInt {
					slot++
				}
				k++
				continue
			}
		}
		out = append(out, free[u])
		slot++
		u++
	}
	return out
}

// Get returns stored messages of typ in canonical order; "" means all.
func (b *Bag) Get(typ string) []*Message {
	all := b.All()
	if typ == "" {
		return all
	}
	return slices.DeleteFunc(all, func(m *Message) bool { return m.Type() != typ })
}

// AtPosition returns the message holding the explicit position p.
func (b *Bag) AtPosition(p int) (*Message, bool) {
	for _, m := range b.messages {
		if pos, ok := m.Position(); ok && pos == p {
			return m, true
		}
	}
	return nil, false
}

func (b *Bag) First() (*Message, bool) {
	all := b.All()
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// Clear removes stored messages of typ; "" removes all.
func (b *Bag) Clear(typ string) *Bag {
	if typ == "" {
		return b.ClearAll()
	}
	b.messages = slices.DeleteFunc(b.messages, func(m *Message) bool { return m.Type() == typ })
	return b
}

func (b *Bag) ClearAll() *Bag {
	b.messages = nil
	return b
}

// Count returns the number of stored messages. Flashed messages are not stored.
func (b *Bag) Count() int { return len(b.messages) }

func (b *Bag) Len() int { return b.Count() }

// Group replaces the grouping with the registered types among types, for a
// following Show or String call.
func (b *Bag) Group(types ...string) *Bag {
	b.grouping = nil
	for _, t := range types {
		b.AddToGrouping(t)
	}
	return b
}

func (b *Bag) AddToGrouping(typ string) *Bag {
	if b.TypeIsAvailable(typ) && !slices.Contains(b.grouping, typ) {
		b.grouping = append(b.grouping, typ)
	}
	return b
}

func (b *Bag) RemoveFromGrouping(typ string) *Bag {
	b.grouping = slices.DeleteFunc(b.grouping, func(t string) bool { return t == typ })
	return b
}

func (b *Bag) GroupingForRender() []string {
	return append([]string{}, b.grouping...)
}

// Show concatenates the rendered messages of typ. With an empty typ the
// active grouping is rendered (and then reset), or every message when no
// grouping is set. A non-empty format overrides message and bag formats.
func (b *Bag) Show(typ, format string) string {
	var sb strings.Builder
	for _, m := range b.forRender(typ) {
		sb.WriteString(b.RenderMessage(m, format))
	}
	return sb.String()
}

func (b *Bag) ShowAll() string {
	return b.Show("", "")
}

// String renders like Show with no type, honoring an active grouping.
func (b *Bag) String() string {
	return b.Show("", "")
}

// RenderMessage renders m using format, else the message format, else the bag format for its type.
func (b *Bag) RenderMessage(m *Message, format string) string {
	if format == "" {
		format = m.Format()
	}
	if format == "" {
		format, _ = b.Format(m.Type())
	}
	return m.RenderWith("", format)
}

func (b *Bag) forRender(typ string) []*Message {
	if typ != "" {
		return b.Get(typ)
	}
	if len(b.grouping) == 0 {
		return b.All()
	}

	var out []*Message
	for _, t := range b.grouping {
		out = append(out, b.Get(t)...)
	}
	b.grouping = nil
	return out
}

// Snapshot is the serialized form of a Bag.
type Snapshot struct {
	Container     string        `json:"container"`
	Format        *string       `json:"format"`
	Types         []string      `json:"types"`
	Notifications []MessageData `json:"notifications"`
}

// Snapshot returns the bag state with stored messages in canonical order.
func (b *Bag) Snapshot() Snapshot {
	all := b.All()
	s := Snapshot{
		Container:     b.name,
		Format:        nullable(b.defaultFormat),
		Types:         b.Types(),
		Notifications: make([]MessageData, 0, len(all)),
	}
	for _, m := range all {
		s.Notifications = append(s.Notifications, m.Data())
	}
	return s
}

// Formats returns a copy of the per-type formats.
func (b *Bag) Formats() map[string]string {
	return maps.Clone(b.formats)
}

func (b *Bag) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

func (b *Bag) ToJSON() ([]byte, error) {
	return b.MarshalJSON()
}
