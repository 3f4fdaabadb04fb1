package flash_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notification/pkg/cookie"
	"github.com/dmitrymomot/notification/pkg/flash"
	"github.com/dmitrymomot/notification/pkg/notification"
)

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{"this-is-a-very-long-secret-key-32-chars-long"})
	require.NoError(t, err)
	return m
}

func withCookies(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func sampleItems() []flash.Item {
	msg := notification.NewMessage("Saved", "success", notification.WithFormat("<b>:message</b>"), notification.WithPosition(1))
	it := flash.NewItem("default", msg)
	it.CreatedAt = it.CreatedAt.Round(0).UTC().Truncate(time.Second)
	return []flash.Item{it}
}

func TestNewItem(t *testing.T) {
	t.Parallel()

	msg := notification.NewMessage("Saved", "success", notification.WithFlashable(true))
	it := flash.NewItem("sidebar", msg)
	assert.NotEqual(t, it.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "sidebar", it.Container)
	assert.Equal(t, "Saved", it.Message.Message)
	assert.WithinDuration(t, time.Now(), it.CreatedAt, time.Second)

	m := notification.New(notification.DefaultConfig())
	it.Restore(m)
	got, ok := m.Container("sidebar").First()
	require.True(t, ok)
	assert.False(t, got.IsFlashable())
	assert.Equal(t, "Saved", got.Text())
}

func TestCookieStore(t *testing.T) {
	t.Parallel()

	store := flash.NewCookieStore(newCookies(t), flash.WithCookieName("n"), flash.WithTTL(time.Minute))
	items := sampleItems()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), items))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookie.FlashCookieName("n"), cookies[0].Name)
	assert.Equal(t, 60, cookies[0].MaxAge)

	next := httptest.NewRecorder()
	got, err := store.Load(next, withCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, items, got)

	got, err = store.Load(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := httptest.NewRecorder()
	require.NoError(t, store.Save(empty, httptest.NewRequest(http.MethodGet, "/", nil), nil))
	assert.Empty(t, empty.Result().Cookies())
}

type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult(args.String(0), args.Error(1))
}

func (m *MockRedis) GetDel(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	t.Run("save and load", func(t *testing.T) {
		client := &MockRedis{}
		store := flash.NewRedisStore(client, newCookies(t), flash.WithKeyPrefix("f:"), flash.WithTTL(time.Minute))
		items := sampleItems()
		payload, err := json.Marshal(items)
		require.NoError(t, err)

		var key string
		client.On("Set", mock.Anything, mock.MatchedBy(func(k string) bool {
			key = k
			return len(k) == len("f:")+36
		}), payload, time.Minute).Return("OK", nil).Once()

		rec := httptest.NewRecorder()
		require.NoError(t, store.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), items))

		client.On("GetDel", mock.Anything, key).Return(string(payload), nil).Once()
		got, err := store.Load(httptest.NewRecorder(), withCookies(rec))
		require.NoError(t, err)
		assert.Equal(t, items, got)
		client.AssertExpectations(t)
	})

	t.Run("save reuses the id cookie", func(t *testing.T) {
		client := &MockRedis{}
		cookies := newCookies(t)
		store := flash.NewRedisStore(client, cookies)

		idRec := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(idRec, "notifications", "8f14e45f-ceea-467e-9575-4e2a9a5e2b1c"))

		client.On("Set", mock.Anything, "flash:8f14e45f-ceea-467e-9575-4e2a9a5e2b1c", mock.Anything, 10*time.Minute).Return("OK", nil).Once()
		require.NoError(t, store.Save(httptest.NewRecorder(), withCookies(idRec), sampleItems()))
		client.AssertExpectations(t)
	})

	t.Run("missing or forged id", func(t *testing.T) {
		client := &MockRedis{}
		store := flash.NewRedisStore(client, newCookies(t))

		got, err := store.Load(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, got)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "notifications", Value: "8f14e45f-ceea-467e-9575-4e2a9a5e2b1c"})
		got, err = store.Load(httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.Nil(t, got)
		client.AssertNotCalled(t, "GetDel", mock.Anything, mock.Anything)
	})

	t.Run("expired payload", func(t *testing.T) {
		client := &MockRedis{}
		cookies := newCookies(t)
		store := flash.NewRedisStore(client, cookies)

		idRec := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(idRec, "notifications", "8f14e45f-ceea-467e-9575-4e2a9a5e2b1c"))
		client.On("GetDel", mock.Anything, "flash:8f14e45f-ceea-467e-9575-4e2a9a5e2b1c").Return("", redis.Nil).Once()

		got, err := store.Load(httptest.NewRecorder(), withCookies(idRec))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("redis errors", func(t *testing.T) {
		client := &MockRedis{}
		cookies := newCookies(t)
		store := flash.NewRedisStore(client, cookies)

		client.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()
		err := store.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), sampleItems())
		assert.ErrorIs(t, err, flash.ErrSaveFailed)
		assert.ErrorIs(t, err, assert.AnError)

		idRec := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(idRec, "notifications", "8f14e45f-ceea-467e-9575-4e2a9a5e2b1c"))
		client.On("GetDel", mock.Anything, mock.Anything).Return("", assert.AnError).Once()
		_, err = store.Load(httptest.NewRecorder(), withCookies(idRec))
		assert.ErrorIs(t, err, flash.ErrLoadFailed)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		client := &MockRedis{}
		cookies := newCookies(t)
		store := flash.NewRedisStore(client, cookies)

		idRec := httptest.NewRecorder()
		require.NoError(t, cookies.SetSigned(idRec, "notifications", "8f14e45f-ceea-467e-9575-4e2a9a5e2b1c"))
		client.On("GetDel", mock.Anything, mock.Anything).Return("not json", nil).Once()
		_, err := store.Load(httptest.NewRecorder(), withCookies(idRec))
		assert.ErrorIs(t, err, flash.ErrInvalidData)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := flash.NewMemoryStore(flash.HeaderKey("X-Client"))
	items := sampleItems()

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, store.Save(nil, anon, items))
	assert.Equal(t, 0, store.Len())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Client", "a")
	require.NoError(t, store.Save(nil, r, items))
	require.NoError(t, store.Save(nil, r, items))

	got, err := store.Load(nil, r)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Load(nil, r)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfig_StoreOptions(t *testing.T) {
	t.Parallel()

	cfg := flash.Config{CookieName: "flash", KeyPrefix: "p:", TTL: time.Minute}
	store := flash.NewCookieStore(newCookies(t), cfg.StoreOptions()...)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), sampleItems()))
	assert.Equal(t, cookie.FlashCookieName("flash"), rec.Result().Cookies()[0].Name)
}
