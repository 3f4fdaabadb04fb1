package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notification/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("static attributes and context values", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithAttr(slog.String("app", "demo")),
			logger.WithContextValue("request_id", ctxKey{}),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "hello")

		entry := decode(t, buf)
		assert.Equal(t, "demo", entry["app"])
		assert.Equal(t, "req-1", entry["request_id"])
	})
}

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		env     string
		wantEnv string
		debug   bool
	}{
		{env: "production", wantEnv: logger.EnvProduction},
		{env: "prod", wantEnv: logger.EnvProduction},
		{env: "stage", wantEnv: logger.EnvStaging},
		{env: "", wantEnv: logger.EnvDevelopment, debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.wantEnv+"/"+tt.env, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(tt.env, "svc"),
				logger.WithOutput(buf),
			)
			log.Debug("dbg")
			if tt.debug {
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
				assert.Contains(t, buf.String(), "service=svc")
				return
			}
			assert.Empty(t, buf.String())

			log.Info("info")
			entry := decode(t, buf)
			assert.Equal(t, tt.wantEnv, entry["env"])
		})
	}
}

func TestAttrs(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, "error", logger.Error(err).Key)
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	errs := logger.Errors(err, nil, err)
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	assert.Len(t, errs.Value.Group(), 2)
	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))

	assert.Equal(t, "container", logger.Container("default").Key)
	assert.Equal(t, "notification_type", logger.NotificationType("info").Key)
	assert.Equal(t, int64(3), logger.Count(3).Value.Int64())
	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))

	g := logger.Group("req", logger.Component("flash"), logger.Event("notification.flash: default"))
	require.Len(t, g.Value.Group(), 2)
	assert.Equal(t, "component", g.Value.Group()[0].Key)
}
