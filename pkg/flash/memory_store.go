package flash

import (
	"net/http"
	"slices"
	"sync"
)

// KeyFunc identifies the client of a request, e.g. by session id.
// An empty key disables flashing for the request.
type KeyFunc func(r *http.Request) string

// HeaderKey keys clients by a request header.
func HeaderKey(name string) KeyFunc {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}

// MemoryStore keeps flashed items in process memory. Safe for concurrent use.
type MemoryStore struct {
	items map[string][]Item
	key   KeyFunc
	mu    sync.Mutex
}

func NewMemoryStore(key KeyFunc) *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]Item),
		key:   key,
	}
}

// Save appends items to the ones not yet loaded for the client.
func (s *MemoryStore) Save(_ http.ResponseWriter, r *http.Request, items []Item) error {
	k := s.key(r)
	if k == "" || len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[k] = append(s.items[k], items...)
	return nil
}

func (s *MemoryStore) Load(_ http.ResponseWriter, r *http.Request) ([]Item, error) {
	k := s.key(r)
	if k == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items[k]
	delete(s.items, k)
	return slices.Clip(items), nil
}

// Len returns the number of clients with pending items.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
