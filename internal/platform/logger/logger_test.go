package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell-api/internal/config"
)

func TestSetupLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "info"},
		{level: "WARN"},
		{level: "Error"},
		{level: "verbose", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			prev := slog.Default()
			defer slog.SetDefault(prev)

			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	buf, log, cleanup := SetupTestLogger(t, &slog.HandlerOptions{Level: slog.LevelInfo})
	defer cleanup()

	log.Debug("hidden")
	log.Info("visible", slog.String("component", "test"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestLoggerContext(t *testing.T) {
	_, log, cleanup := SetupTestLogger(t, nil)
	defer cleanup()

	scoped := log.With(slog.String("trace_id", "abc123"))

	t.Run("round trip", func(t *testing.T) {
		ctx := WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, FromContext(ctx))
	})

	t.Run("empty context falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("fallback logger preferred over default", func(t *testing.T) {
		fallback := log.With(slog.String("component", "store"))
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

		ctx := WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, FromContextOrDefault(ctx, fallback))
	})
}
