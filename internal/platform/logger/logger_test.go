package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarmadH97/keeyu-task-board/internal/config"
)

func TestSetupLevels(t *testing.T) {
	testCases := []struct {
		name         string
		configured   string
		debugEnabled bool
		infoEnabled  bool
	}{
		{
			name:         "debug level",
			configured:   "debug",
			debugEnabled: true,
			infoEnabled:  true,
		},
		{
			name:         "info level",
			configured:   "info",
			debugEnabled: false,
			infoEnabled:  true,
		},
		{
			name:         "warn level",
			configured:   "warn",
			debugEnabled: false,
			infoEnabled:  false,
		},
		{
			name:         "case insensitive",
			configured:   "DEBUG",
			debugEnabled: true,
			infoEnabled:  true,
		},
		{
			name:         "invalid level falls back to info",
			configured:   "extreme",
			debugEnabled: false,
			infoEnabled:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tc.configured})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tc.debugEnabled, log.Handler().Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tc.infoEnabled, log.Handler().Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), stored)

	assert.Same(t, stored, FromContext(ctx))
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))

	empty := context.Background()
	assert.NotNil(t, FromContext(empty), "FromContext must never return nil")
	assert.Same(t, fallback, FromContextOrDefault(empty, fallback))
	assert.NotNil(t, FromContextOrDefault(empty, nil))
}

func TestTestLogBufferEntries(t *testing.T) {
	log, buf := NewTestLogger()

	log.Info("first", slog.String("key", "value"))
	log.Debug("second")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "second", entries[1]["msg"])
}
