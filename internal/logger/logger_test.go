package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reppi.log")

	l, cleanup := New(Options{Level: "debug", JSON: true, Rotate: &FileRotate{Filename: file, MaxSizeMB: 1}})
	l.Info("goal completed", zap.String("goal", "pushups"))
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"goal completed"`)
	assert.Contains(t, string(data), `"goal":"pushups"`)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, cleanup := New(Options{Level: "verbose"})
	defer cleanup()

	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestStdLogger(t *testing.T) {
	l, cleanup := New(Options{Level: "warn"})
	defer cleanup()

	std := StdLogger(l, zapcore.WarnLevel)
	require.NotNil(t, std)
	std.Printf("slow query %d ms", 250)
}
