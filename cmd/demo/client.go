package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notification/pkg/cookie"
	"github.com/dmitrymomot/notification/pkg/logger"
)

const clientCookie = "client"

type clientKey struct{}

// clientID gives every browser a signed id cookie. Live notices are scoped
// to it so a stream only shows its own client's messages.
func clientID(cookies *cookie.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := cookies.GetSigned(r, clientCookie)
			if _, perr := uuid.Parse(id); err != nil || perr != nil {
				id = uuid.NewString()
				if err := cookies.SetSigned(w, clientCookie, id); err != nil {
					log.ErrorContext(r.Context(), "failed to set client cookie", logger.Error(err))
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientKey{}, id)))
		})
	}
}

func clientFromRequest(r *http.Request) string {
	id, _ := r.Context().Value(clientKey{}).(string)
	return id
}
