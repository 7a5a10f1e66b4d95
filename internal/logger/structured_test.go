package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/getlawrence/reporter/internal/progressbar"
)

func newObservedStructured() (*Structured, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(level)
	return NewStructuredWithCore(core, level), logs
}

func TestStructured_LevelsAndKinds(t *testing.T) {
	s, logs := newObservedStructured()

	s.Success("built")
	s.Info("starting")
	s.Warn("careful")
	s.Error("broken")
	s.Log("plain")

	entries := logs.All()
	require.Len(t, entries, 5)

	want := []struct {
		level zapcore.Level
		kind  string
		msg   string
	}{
		{zapcore.InfoLevel, "success", "built"},
		{zapcore.InfoLevel, "info", "starting"},
		{zapcore.WarnLevel, "warning", "careful"},
		{zapcore.ErrorLevel, "error", "broken"},
		{zapcore.InfoLevel, "log", "plain"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, entries[i].Level)
		assert.Equal(t, w.msg, entries[i].Message)
		assert.Equal(t, w.kind, entries[i].ContextMap()[kindField])
	}
}

func TestStructured_VerboseToggle(t *testing.T) {
	s, logs := newObservedStructured()

	s.Verbose("hidden")
	assert.Equal(t, 0, logs.Len())
	assert.False(t, s.IsVerbose())

	s.SetVerbose(true)
	assert.True(t, s.IsVerbose())
	s.Verbose("shown")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)

	s.SetVerbose(false)
	s.Verbose("hidden again")
	assert.Equal(t, 1, logs.Len())
}

func TestStructured_ActivityEvents(t *testing.T) {
	s, logs := newObservedStructured()
	s.SetVerbose(true)

	sp := s.Activity()
	sp.Tick("build — compiling")
	sp.End()

	entries := logs.FilterField(zap.String(kindField, "activity")).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "activity tick", entries[0].Message)
	assert.Equal(t, "build — compiling", entries[1].ContextMap()[activityField])
}

func TestStructured_ProgressCounts(t *testing.T) {
	s, logs := newObservedStructured()
	s.SetVerbose(true)
	bar := s.Progress(":current/:total", progressbar.Options{Total: 3})
	bar.Tick()
	assert.Equal(t, 1, bar.Current())
	assert.Equal(t, 0, logs.Len())
}

func TestStructured_ProgressCompletionEvent(t *testing.T) {
	s, logs := newObservedStructured()
	s.SetVerbose(true)

	bar := s.Progress(":current/:total", progressbar.Options{Total: 1})
	bar.Tick()
	bar.Tick()
	bar.End()

	entries := logs.FilterField(zap.String(kindField, "activity")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "activity progress complete", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(1), entries[0].ContextMap()["current"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["total"])
}

func TestNewStructured_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewStructured(&buf)
	s.Success("one")
	s.Warn("two")
	require.NoError(t, s.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "one", first["msg"])
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "success", first[kindField])
}
