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
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" Warning "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestInitWritesToFile(t *testing.T) {
	defer Set(nil)

	path := filepath.Join(t.TempDir(), "logs", "mercauca.log")
	require.NoError(t, Init("info", path))

	Info("hello", zap.String("who", "tester"))
	Debug("hidden")
	Warnf("count=%d", 3)
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"hello"`)
	assert.Contains(t, out, `"who":"tester"`)
	assert.Contains(t, out, "count=3")
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestSetObserver(t *testing.T) {
	defer Set(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))

	Errorf("boom %s", "now")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom now", logs.All()[0].Message)
}
