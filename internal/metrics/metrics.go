// Package metrics counts what the reporter emits so a build can export
// message and activity totals in the Prometheus text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reporter"

// Recorder implements reporter.Observer on a private Prometheus registry.
type Recorder struct {
	registry   *prometheus.Registry
	messages   *prometheus.CounterVec
	activities *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewRecorder creates and registers the reporter metrics.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages emitted, by level.",
		}, []string{"level"}),
		activities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_started_total",
			Help:      "Activities started, by kind.",
		}, []string{"kind"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "activity_duration_seconds",
			Help:      "Time from activity start to done, by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"kind"}),
	}

	for name, c := range map[string]prometheus.Collector{
		"messages_total":            r.messages,
		"activities_started_total":  r.activities,
		"activity_duration_seconds": r.durations,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering %q: %w", name, err)
		}
	}
	return r, nil
}

// Registry returns the underlying Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) MessageEmitted(level string) {
	r.messages.WithLabelValues(level).Inc()
}

func (r *Recorder) ActivityStarted(kind string) {
	r.activities.WithLabelValues(kind).Inc()
}

func (r *Recorder) ActivityFinished(kind string, d time.Duration) {
	r.durations.WithLabelValues(kind).Observe(d.Seconds())
}

// WriteFile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
