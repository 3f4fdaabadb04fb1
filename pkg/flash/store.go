package flash

import (
	"net/http"
	"time"
)

// Store persists flashed items between requests.
// Load is read-once: returned items are removed from the store.
type Store interface {
	Save(w http.ResponseWriter, r *http.Request, items []Item) error
	Load(w http.ResponseWriter, r *http.Request) ([]Item, error)
}

const (
	defaultCookieName = "notifications"
	defaultKeyPrefix  = "flash:"
	defaultTTL        = 10 * time.Minute
)

type storeOptions struct {
	cookieName string
	keyPrefix  string
	ttl        time.Duration
}

func newStoreOptions(opts []StoreOption) storeOptions {
	o := storeOptions{
		cookieName: defaultCookieName,
		keyPrefix:  defaultKeyPrefix,
		ttl:        defaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// StoreOption configures the cookie and redis stores.
type StoreOption func(*storeOptions)

// WithCookieName sets the cookie (or cookie key) holding the flash data or id.
func WithCookieName(name string) StoreOption {
	return func(o *storeOptions) {
		if name != "" {
			o.cookieName = name
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(o *storeOptions) {
		o.keyPrefix = prefix
	}
}

// WithTTL bounds how long unread flashes are kept.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *storeOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}
