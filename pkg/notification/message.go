package notification

import "strings"

// Placeholders substituted by Message.Render.
const (
	PlaceholderType    = ":type"
	PlaceholderMessage = ":message"
)

// Message is a single typed notification held by a Bag.
type Message struct {
	text      string
	typ       string
	flashable bool
	format    string
	alias     string
	position  *int
}

// MessageOption configures a Message.
type MessageOption func(*Message)

// WithFlashable marks the message as deferred to the next request.
func WithFlashable(flashable bool) MessageOption {
	return func(m *Message) {
		m.flashable = flashable
	}
}

// WithFormat sets a per-message format overriding the bag formats.
func WithFormat(format string) MessageOption {
	return func(m *Message) {
		m.format = format
	}
}

// WithAlias sets an optional identifier carried through serialization.
func WithAlias(alias string) MessageOption {
	return func(m *Message) {
		m.alias = alias
	}
}

// WithPosition requests an explicit slot in the bag's canonical order.
func WithPosition(position int) MessageOption {
	return func(m *Message) {
		m.SetPosition(position)
	}
}

// NewMessage creates a message. Without options it is not flashable and has
// no format, alias or position.
func NewMessage(text, typ string, opts ...MessageOption) *Message {
	m := &Message{
		text: text,
		typ:  typ,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Message) Text() string { return m.text }

func (m *Message) SetText(text string) *Message {
	m.text = text
	return m
}

func (m *Message) Type() string { return m.typ }

func (m *Message) SetType(typ string) *Message {
	m.typ = typ
	return m
}

func (m *Message) IsFlashable() bool { return m.flashable }

func (m *Message) SetFlashable(flashable bool) *Message {
	m.flashable = flashable
	return m
}

// Format returns the message's own format; empty means the bag decides.
func (m *Message) Format() string { return m.format }

func (m *Message) SetFormat(format string) *Message {
	m.format = format
	return m
}

func (m *Message) Alias() string { return m.alias }

func (m *Message) SetAlias(alias string) *Message {
	m.alias = alias
	return m
}

// Position returns the explicit position and whether one is set.
func (m *Message) Position() (int, bool) {
	if m.position == nil {
		return 0, false
	}
	return *m.position, true
}

func (m *Message) SetPosition(position int) *Message {
	m.position = &position
	return m
}

func (m *Message) ClearPosition() *Message {
	m.position = nil
	return m
}

// Render substitutes the placeholders of the message's own format.
func (m *Message) Render() string {
	return m.RenderWith("", "")
}

// RenderWith renders with the given text and format, falling back to the
// stored ones for empty arguments. Without any format the raw text is
// returned. :type is replaced before :message.
func (m *Message) RenderWith(text, format string) string {
	if text == "" {
		text = m.text
	}
	if format == "" {
		format = m.format
	}
	if format == "" {
		return text
	}

	out := strings.ReplaceAll(format, PlaceholderType, m.typ)
	return strings.ReplaceAll(out, PlaceholderMessage, text)
}

// String implements fmt.Stringer.
func (m *Message) String() string {
	return m.Render()
}

// MessageData is the serialized form of a Message. Empty format and alias
// and a missing position encode as null.
type MessageData struct {
	Message   string  `json:"message"`
	Format    *string `json:"format"`
	Type      string  `json:"type"`
	Flashable bool    `json:"flashable"`
	Alias     *string `json:"alias"`
	Position  *int    `json:"position"`
}

// Data returns the raw field values of the message.
func (m *Message) Data() MessageData {
	d := MessageData{
		Message:   m.text,
		Format:    nullable(m.format),
		Type:      m.typ,
		Flashable: m.flashable,
		Alias:     nullable(m.alias),
	}
	if m.position != nil {
		p := *m.position
		d.Position = &p
	}
	return d
}

// ToMessage rebuilds a Message from its serialized form.
func (d MessageData) ToMessage() *Message {
	m := NewMessage(d.Message, d.Type, WithFlashable(d.Flashable))
	if d.Format != nil {
		m.format = *d.Format
	}
	if d.Alias != nil {
		m.alias = *d.Alias
	}
	if d.Position != nil {
		m.SetPosition(*d.Position)
	}
	return m
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
