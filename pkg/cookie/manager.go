package cookie

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	minSecretLength = 32

	// maxCookieSize is the browser limit for name, value and attributes together.
	maxCookieSize = 4096

	flashPrefix = "__flash_"
)

// Manager writes and reads cookies with shared default options.
type Manager struct {
	keys     []key
	defaults Options
}

// New creates a manager. Empty secrets are skipped; at least one secret of
// 32 or more characters is required.
func New(secrets []string, opts ...Option) (*Manager, error) {
	keys := make([]key, 0, len(secrets))
	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		k, err := newKey(s)
		if err != nil {
			return nil, fmt.Errorf("cookie: prepare secret %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, ErrNoSecret
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		keys:     keys,
		defaults: defaults.with(opts),
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.defaults.with(opts).cookie(name, value)
	if len(c.String()) > maxCookieSize {
		return fmt.Errorf("%w: %s", ErrValueTooLarge, name)
	}
	http.SetCookie(w, c)
	return nil
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie using the default path and domain.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.defaults.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// SetSigned writes a cookie readable by the client but tamper-evident.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.keys[0].sign(name, value), opts...)
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return verify(m.keys, name, signed)
}

// SetEncrypted writes a cookie the client can neither read nor modify.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.keys[0].seal(name, value)
	if err != nil {
		return fmt.Errorf("cookie: encrypt %s: %w", name, err)
	}
	return m.Set(w, name, sealed, opts...)
}

func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	sealed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return open(m.keys, name, sealed)
}

// SetFlash stores value as encrypted JSON under the flash key.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any, opts ...Option) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cookie: marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data), opts...)
}

// PopFlash decodes the flash stored under key into dest and deletes the
// cookie. A cookie that fails to decrypt or decode is deleted as well.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	data, err := m.GetEncrypted(r, name)
	if errors.Is(err, ErrCookieNotFound) {
		return err
	}
	m.Delete(w, name)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cookie: unmarshal flash: %w", err)
	}
	return nil
}

// DeleteFlash expires the flash cookie for key.
func (m *Manager) DeleteFlash(w http.ResponseWriter, key string) {
	m.Delete(w, flashPrefix+key)
}

// FlashCookieName returns the cookie name used for the flash key.
func FlashCookieName(key string) string {
	return flashPrefix + key
}
