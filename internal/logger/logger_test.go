package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger(t *testing.T) {
	t.Run("default config values are set", func(t *testing.T) {
		l, err := NewZapLogger(Config{})
		require.NoError(t, err)

		zl := l.(*ZapLogger)
		assert.Equal(t, InfoLevel, zl.cfg.LogLevel)
		assert.Equal(t, DefaultMaxSizeMB, zl.cfg.MaxSizeMB)
		assert.Equal(t, DefaultMaxAgeDays, zl.cfg.MaxAgeDays)
	})

	t.Run("creates log directory and writes json entries", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "genum.log")

		l, err := NewZapLogger(Config{FilePath: logFile, LogLevel: DebugLevel})
		require.NoError(t, err)

		l.Info("provider call finished", map[string]interface{}{"vendor": "openai"})
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"provider call finished"`)
		assert.Contains(t, string(data), `"vendor":"openai"`)
	})

	t.Run("error file only receives error entries", func(t *testing.T) {
		errFile := filepath.Join(t.TempDir(), "error.log")

		l, err := NewZapLogger(Config{ErrorFilePath: errFile})
		require.NoError(t, err)

		l.Info("not here", nil)
		l.Error("here", map[string]interface{}{ErrorKey: errors.New("boom")})
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(errFile)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "not here")
		assert.Contains(t, string(data), `"error":"boom"`)
	})

	t.Run("console output respects level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewZapLogger(Config{UseConsole: true, Console: &buf, LogLevel: WarnLevel})
		require.NoError(t, err)

		l.Info("quiet", nil)
		l.Warn("loud", nil)

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})
}

func TestZapLogger_WithField(t *testing.T) {
	l, err := NewZapLogger(Config{UseConsole: true, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	newLogger := l.WithField("key", "value")
	assert.NotNil(t, newLogger)
	assert.NotSame(t, l, newLogger, "WithField should return a new logger instance")
	assert.Same(t, l, l.WithFields(nil))
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel LogLevel
		want     zapcore.Level
	}{
		{"debug level", DebugLevel, zapcore.DebugLevel},
		{"info level", InfoLevel, zapcore.InfoLevel},
		{"warn level", WarnLevel, zapcore.WarnLevel},
		{"error level", ErrorLevel, zapcore.ErrorLevel},
		{"fatal level", FatalLevel, zapcore.FatalLevel},
		{"unknown level", LogLevel("verbose"), zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLogLevel(tc.logLevel))
		})
	}
}

func TestInvalidDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	l, err := NewZapLogger(Config{FilePath: filepath.Join(blocker, "app.log")})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))

	m := &MockLogger{}
	assert.Same(t, m, OrDiscard(m))
}
