package flash

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/notification/pkg/cookie"
)

// CookieStore keeps flashed items in an encrypted cookie.
// The payload is limited by the browser cookie size (about 4KB).
type CookieStore struct {
	cookies *cookie.Manager
	opts    storeOptions
}

func NewCookieStore(cookies *cookie.Manager, opts ...StoreOption) *CookieStore {
	return &CookieStore{
		cookies: cookies,
		opts:    newStoreOptions(opts),
	}
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.cookies.SetFlash(w, s.opts.cookieName, items, cookie.WithMaxAge(int(s.opts.ttl.Seconds()))); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

func (s *CookieStore) Load(w http.ResponseWriter, r *http.Request) ([]Item, error) {
	var items []Item
	err := s.cookies.PopFlash(w, r, s.opts.cookieName, &items)
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return items, nil
}
