package logger_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in   string
		want zapcore.Level
	}

	tests := []testCase{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logger.ParseLevel(tt.in), tt.in)
	}
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := logger.New(logger.Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("record excluded from ledger", zap.String("reason", "missing date"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "record excluded from ledger", entry["msg"])
	assert.Equal(t, "missing date", entry["reason"])
}

func TestNew_BadOutput(t *testing.T) {
	_, err := logger.New(logger.Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestNew_Console(t *testing.T) {
	l, err := logger.New(logger.Config{Format: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestContext(t *testing.T) {
	assert.NotNil(t, logger.FromContext(context.Background()))

	l := zap.NewExample()
	ctx := logger.WithContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
}
