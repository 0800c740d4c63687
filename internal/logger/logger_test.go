package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level    string
		enabled  []zapcore.Level
		disabled []zapcore.Level
	}{
		{level: "debug", enabled: []zapcore.Level{zapcore.DebugLevel, zapcore.ErrorLevel}},
		{level: "info", enabled: []zapcore.Level{zapcore.InfoLevel}, disabled: []zapcore.Level{zapcore.DebugLevel}},
		{level: "warn", enabled: []zapcore.Level{zapcore.WarnLevel, zapcore.ErrorLevel}, disabled: []zapcore.Level{zapcore.InfoLevel}},
		{level: "ERROR", enabled: []zapcore.Level{zapcore.ErrorLevel}, disabled: []zapcore.Level{zapcore.WarnLevel}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			require.NoError(t, err)

			core := l.Desugar().Core()
			for _, lvl := range tt.enabled {
				assert.True(t, core.Enabled(lvl), "%s should be enabled", lvl)
			}
			for _, lvl := range tt.disabled {
				assert.False(t, core.Enabled(lvl), "%s should be disabled", lvl)
			}
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	l, err := New("verbose")
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestInitialize_SwapsGlobal(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Initialize("warn"))
	assert.NotSame(t, prev, Log)
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.InfoLevel))

	current := Log
	assert.Error(t, Initialize("verbose"))
	assert.Same(t, current, Log, "a bad level keeps the active logger")
}

func TestLog_DefaultIsNop(t *testing.T) {
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.FatalLevel))
	assert.NotPanics(t, Sync)
}
