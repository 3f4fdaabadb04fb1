package notification

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Mode is the operation encoded in a dynamic method name.
type Mode string

const (
	ModeAdd     Mode = "add"     // "<type>"
	ModeInstant Mode = "instant" // "<type>Instant"
	ModeClear   Mode = "clear"   // "clear<Type>"
	ModeShow    Mode = "show"    // "show<Type>"
)

// ExtractType resolves a dynamic method name against the registered types.
// Matching is exact and case-sensitive; for the clear and show forms only the
// first character of the type is upper-cased.
func (b *Bag) ExtractType(name string) (string, Mode, bool) {
	for _, t := range b.types {
		switch name {
		case t:
			return t, ModeAdd, true
		case t + "Instant":
			return t, ModeInstant, true
		case "clear" + capitalize(t):
			return t, ModeClear, true
		case "show" + capitalize(t):
			return t, ModeShow, true
		}
	}
	return "", "", false
}

// Call invokes a type-derived operation by name, e.g. "success",
// "successInstant", "clearSuccess" or "showSuccess".
//
// Add forms take the message (string or *Message) followed by optional
// format, alias and position, or MessageOption values; they return the *Bag.
// A *Message gets its flashable flag forced to the mode of the name.
// "clear<Type>" returns the *Bag, "show<Type>" takes an optional format and
// returns the rendered string.
func (b *Bag) Call(name string, args ...any) (any, error) {
	typ, mode, ok := b.ExtractType(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, name)
	}

	switch mode {
	case ModeClear:
		return b.Clear(typ), nil
	case ModeShow:
		format, err := optionalString(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return b.Show(typ, format), nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s requires a message", ErrInvalidArgument, name)
	}
	opts, err := messageArgs(args[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	flashable := mode == ModeAdd
	switch msg := args[0].(type) {
	case string:
		return b.Add(typ, msg, flashable, opts...), nil
	case *Message:
		if msg == nil {
			return nil, fmt.Errorf("%w: %s got a nil message", ErrInvalidArgument, name)
		}
		if msg.IsFlashable() != flashable {
			msg.SetFlashable(flashable)
		}
		return b.AddMessage(typ, msg, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s got message of type %T", ErrInvalidArgument, name, args[0])
	}
}

// messageArgs maps the positional (format, alias, position) arguments of the
// add forms to options. nil skips a position.
func messageArgs(args []any) ([]MessageOption, error) {
	opts := make([]MessageOption, 0, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
		case MessageOption:
			opts = append(opts, v)
		case string:
			switch i {
			case 0:
				opts = append(opts, WithFormat(v))
			case 1:
				opts = append(opts, WithAlias(v))
			default:
				return nil, fmt.Errorf("%w: unexpected string argument %d", ErrInvalidArgument, i+1)
			}
		case int:
			if i != 2 {
				return nil, fmt.Errorf("%w: unexpected int argument %d", ErrInvalidArgument, i+1)
			}
			opts = append(opts, WithPosition(v))
		default:
			return nil, fmt.Errorf("%w: unsupported argument %d of type %T", ErrInvalidArgument, i+1, arg)
		}
	}
	return opts, nil
}

func optionalString(args []any) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		if args[0] == nil {
			return "", nil
		}
		s, ok := args[0].(string)
		if !ok {
			return "", fmt.Errorf("%w: expected format string, got %T", ErrInvalidArgument, args[0])
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: too many arguments", ErrInvalidArgument)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
