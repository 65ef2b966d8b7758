package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taskmaestro/maestro/internal/config"
)

func TestNewWritesJSONToLogFile(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "maestro.log")

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info("store opened", zap.String("path", "x.db"))
	log.Debug("hidden at info level")
	_ = log.Sync()

	raw, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"msg":"store opened"`)
	assert.Contains(t, out, `"logger":"taskmaestro"`)
	assert.NotContains(t, out, "hidden at info level")
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("", true)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	lvl, err = parseLevel("warn", false)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = parseLevel("loud", false)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "logger:"))
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("nothing happens")
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
