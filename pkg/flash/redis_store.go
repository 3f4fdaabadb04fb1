package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notification/pkg/cookie"
)

// RedisClient is the subset of redis.Cmdable used by RedisStore.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps flashed items in Redis under a per-browser id.
// The id travels in a signed cookie; the payload never leaves the server.
type RedisStore struct {
	client  RedisClient
	cookies *cookie.Manager
	opts    storeOptions
}

func NewRedisStore(client RedisClient, cookies *cookie.Manager, opts ...StoreOption) *RedisStore {
	return &RedisStore{
		client:  client,
		cookies: cookies,
		opts:    newStoreOptions(opts),
	}
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}

	id, ok := s.id(r)
	if !ok {
		id = uuid.New()
	}
	if err := s.client.Set(r.Context(), s.key(id), data, s.opts.ttl).Err(); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	if err := s.cookies.SetSigned(w, s.opts.cookieName, id.String(), cookie.WithMaxAge(int(s.opts.ttl.Seconds()))); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}

func (s *RedisStore) Load(_ http.ResponseWriter, r *http.Request) ([]Item, error) {
	id, ok := s.id(r)
	if !ok {
		return nil, nil
	}

	data, err := s.client.GetDel(r.Context(), s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return items, nil
}

// id returns the flash id from the signed cookie. Missing, forged or
// malformed ids are treated as absent.
func (s *RedisStore) id(r *http.Request) (uuid.UUID, bool) {
	raw, err := s.cookies.GetSigned(r, s.opts.cookieName)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.opts.keyPrefix + id.String()
}
