// Package view renders notification bags as templ components and streams
// newly added messages to the browser with datastar.
//
// Formats are trusted templates written by the application, so rendered
// output is written unescaped. Message text is written as given; escape user
// input before adding it to a bag.
package view

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/notification/pkg/notification"
)

// Show renders the messages of typ in bag.
func Show(bag *notification.Bag, typ string) templ.Component {
	return raw(func() string { return bag.Show(typ, "") })
}

// ShowAll renders every message in bag.
func ShowAll(bag *notification.Bag) templ.Component {
	return raw(bag.ShowAll)
}

// Group renders the messages of types, in the order given.
func Group(bag *notification.Bag, types ...string) templ.Component {
	return raw(func() string { return bag.Group(types...).String() })
}

// Container renders the named container of the request's manager.
// Nothing is rendered when the context has no manager.
func Container(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m, ok := notification.FromContext(ctx)
		if !ok {
			return nil
		}
		_, err := io.WriteString(w, m.Container(name).ShowAll())
		return err
	})
}

// Notice renders a streamed notice.
func Notice(n notification.Notice) templ.Component {
	return raw(func() string { return n.Rendered })
}

func raw(render func() string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, render())
		return err
	})
}
