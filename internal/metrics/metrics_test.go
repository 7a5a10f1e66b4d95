package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)

	r.MessageEmitted("info")
	r.MessageEmitted("info")
	r.MessageEmitted("error")
	r.ActivityStarted("spinner")
	r.ActivityFinished("spinner", 1500*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.messages.WithLabelValues("info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.messages.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.activities.WithLabelValues("spinner")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.durations))
}

func TestRecorder_WriteFile(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)
	r.MessageEmitted("warn")

	path := filepath.Join(t.TempDir(), "reporter.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `reporter_messages_total{level="warn"} 1`)
}

func TestRecorder_WriteFileBadPath(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)
	assert.Error(t, r.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}

func TestRecorder_RegistryGathersAll(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)
	r.MessageEmitted("success")
	r.ActivityStarted("progress")

	want := `
# HELP reporter_activities_started_total Activities started, by kind.
# TYPE reporter_activities_started_total counter
reporter_activities_started_total{kind="progress"} 1
# HELP reporter_messages_total Messages emitted, by level.
# TYPE reporter_messages_total counter
reporter_messages_total{level="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(want),
		"reporter_messages_total", "reporter_activities_started_total"))
}
