package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notification/pkg/logger"
	"github.com/dmitrymomot/notification/pkg/notification"
)

func home(w http.ResponseWriter, r *http.Request) {
	m := notification.MustFromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page(m.Default()).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", logger.Error(err))
	}
}

// notify adds the posted message through the dynamic name of its type:
// "<type>" flashes it, "<type>Instant" with mode=instant adds it for this
// request only, which reaches open pages through the stream.
func notify(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := chi.URLParam(r, "type")
		text := templ.EscapeString(r.FormValue("message"))
		if text == "" {
			text = "Hello from " + typ
		}

		name := typ
		if r.FormValue("mode") == "instant" {
			name += "Instant"
		}

		m := notification.MustFromContext(r.Context())
		if _, err := m.Call(name, text); err != nil {
			if errors.Is(err, notification.ErrMethodNotFound) {
				http.Error(w, "unknown notification type", http.StatusNotFound)
				return
			}
			log.ErrorContext(r.Context(), "failed to add notification",
				logger.NotificationType(typ),
				logger.Error(err),
			)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
