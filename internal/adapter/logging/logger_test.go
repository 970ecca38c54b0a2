package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &ZapLogger{logger: zap.New(core).Sugar()}, logs
}

func TestWithCarriesFields(t *testing.T) {
	base, logs := newObservedLogger()

	child := base.With("requestId", "req-9", "route", "team")
	child.Warn("Failed to parse submission", "error", "bad json")
	base.Info("Server listening")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{
		"requestId": "req-9",
		"route":     "team",
		"error":     "bad json",
	}, entries[0].ContextMap())

	assert.Empty(t, entries[1].ContextMap())
}

func TestLevels(t *testing.T) {
	l, logs := newObservedLogger()

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	var levels []zapcore.Level
	for _, e := range logs.All() {
		levels = append(levels, e.Level)
	}
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}, levels)
}

func TestNewZapLoggerWithLevelFallsBackOnBadLevel(t *testing.T) {
	l := NewZapLoggerWithLevel("loud", false)
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("ok") })
}
