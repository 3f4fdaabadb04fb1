package flash

import "time"

// Config holds flash store configuration.
type Config struct {
	CookieName string        `env:"FLASH_COOKIE_NAME" envDefault:"notifications"`
	KeyPrefix  string        `env:"FLASH_REDIS_PREFIX" envDefault:"flash:"`
	TTL        time.Duration `env:"FLASH_TTL" envDefault:"10m"`
}

// StoreOptions converts the config to store options.
func (c Config) StoreOptions() []StoreOption {
	return []StoreOption{
		WithCookieName(c.CookieName),
		WithKeyPrefix(c.KeyPrefix),
		WithTTL(c.TTL),
	}
}
