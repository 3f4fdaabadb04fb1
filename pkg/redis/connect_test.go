package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notification/pkg/redis"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     redis.Config
		wantErr error
	}{
		{
			name:    "empty url",
			cfg:     redis.Config{},
			wantErr: redis.ErrEmptyConnectionURL,
		},
		{
			name:    "invalid url",
			cfg:     redis.Config{ConnectionURL: "http://localhost:6379"},
			wantErr: redis.ErrFailedToParseRedisConnString,
		},
		{
			name: "unreachable server",
			cfg: redis.Config{
				ConnectionURL:  "redis://127.0.0.1:1/0",
				RetryAttempts:  2,
				RetryInterval:  10 * time.Millisecond,
				ConnectTimeout: time.Second,
			},
			wantErr: redis.ErrRedisNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := redis.Connect(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, client)
		})
	}
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://localhost:6379/0"}.Enabled())
}
