// Package reporter is the facade build tooling talks to. It forwards leveled
// messages to a logger.Logger, turns ErrorDetails into a readable block and
// tracks long-running activities as spinners or progress bars.
package reporter

import (
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/getlawrence/reporter/internal/logger"
)

const tracerName = "github.com/getlawrence/reporter"

// Observer is notified about emitted messages and activity lifecycles.
type Observer interface {
	MessageEmitted(level string)
	ActivityStarted(kind string)
	ActivityFinished(kind string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) MessageEmitted(string)                  {}
func (nopObserver) ActivityStarted(string)                 {}
func (nopObserver) ActivityFinished(string, time.Duration) {}

// Reporter is safe to share; per-activity state lives in the handles it returns.
type Reporter struct {
	out      logger.Logger
	styles   logger.Styles
	tracer   trace.Tracer
	observer Observer
	now      func() time.Time
	workDir  func() (string, error)
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithRenderer colors error segments for the renderer's output.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(rep *Reporter) { rep.styles = logger.NewStyles(r) }
}

// WithTracer records activities as spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(rep *Reporter) { rep.tracer = t }
}

// WithObserver registers an observer for message and activity counts.
func WithObserver(o Observer) Option {
	return func(rep *Reporter) { rep.observer = o }
}

// WithClock overrides the clock used for elapsed times.
func WithClock(now func() time.Time) Option {
	return func(rep *Reporter) { rep.now = now }
}

// WithWorkingDir fixes the directory error file paths are made relative to.
func WithWorkingDir(dir string) Option {
	return func(rep *Reporter) {
		rep.workDir = func() (string, error) { return dir, nil }
	}
}

// New creates a Reporter writing through out.
func New(out logger.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		out:      out,
		styles:   logger.NewStyles(nil),
		tracer:   otel.Tracer(tracerName),
		observer: nopObserver{},
		now:      time.Now,
		workDir:  os.Getwd,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetVerbose toggles verbose output on the underlying logger.
func (r *Reporter) SetVerbose(isVerbose bool) {
	r.out.SetVerbose(isVerbose)
}

// IsVerbose reports the underlying logger's verbosity.
func (r *Reporter) IsVerbose() bool {
	return r.out.IsVerbose()
}

// SetColors is reserved for turning off colors in error output. It does nothing.
func (r *Reporter) SetColors() {}

func (r *Reporter) Success(message string) {
	r.out.Success(message)
	r.observer.MessageEmitted("success")
}

func (r *Reporter) Verbose(message string) {
	r.out.Verbose(message)
	r.observer.MessageEmitted("verbose")
}

func (r *Reporter) Info(message string) {
	r.out.Info(message)
	r.observer.MessageEmitted("info")
}

func (r *Reporter) Warn(message string) {
	r.out.Warn(message)
	r.observer.MessageEmitted("warn")
}

func (r *Reporter) Log(message string) {
	r.out.Log(message)
	r.observer.MessageEmitted("log")
}

// Error formats details and prints them at error level.
func (r *Reporter) Error(details ErrorDetails) {
	r.out.Error(r.FormatError(details))
	r.observer.MessageEmitted("error")
}
