package main

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/notification/pkg/notification"
	"github.com/dmitrymomot/notification/pkg/notification/view"
)

const (
	pageHead = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Notifications</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.5/bundles/datastar.js"></script>
</head>
<body>
<section id="flash">`

	pageForm = `</section>
<form method="post" action="/notify/success">
<input name="message" placeholder="Message">
<label><input type="checkbox" name="mode" value="instant"> instant</label>
<button>Send</button>
</form>
<h2>Live</h2>
<div id="live" data-on-load="@get('/stream')"></div>
</body>
</html>`
)

func page(bag *notification.Bag) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := view.ShowAll(bag).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageForm)
		return err
	})
}
