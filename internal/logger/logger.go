// Package logger holds the output sinks that sit underneath the reporter
// facade. A Logger prints leveled messages and hands out spinner and
// progress-bar primitives for long-running activities.
package logger

import "github.com/getlawrence/reporter/internal/progressbar"

// Logger is the underlying text reporter.
type Logger interface {
	Success(msg string)
	Error(msg string)
	// Verbose prints only while verbose mode is on.
	Verbose(msg string)
	Info(msg string)
	Warn(msg string)
	Log(msg string)

	SetVerbose(isVerbose bool)
	IsVerbose() bool

	// Activity returns a fresh spinner. Each call yields a distinct instance.
	Activity() Spinner
	// Progress returns a fresh progress bar drawn on the logger's stream.
	// Output and Interactive in opts are decided by the logger.
	Progress(format string, opts progressbar.Options) ProgressBar
}

// Spinner displays progress for a long-running operation.
// Implementations should be safe for single-threaded Tick/End usage.
type Spinner interface {
	// Tick advances the spinner and replaces its label.
	Tick(label string)
	// End stops the spinner and clears its line.
	End()
}

// ProgressBar is a counting bar.
type ProgressBar interface {
	Tick()
	SetTotal(total int)
	Total() int
	Current() int
	// End releases the bar's display, whether or not it reached its total.
	End()
}

// noOpSpinner is used when output is non-interactive (e.g., tests, piped output).
// It performs no rendering to keep output stable.
type noOpSpinner struct{}

func (noOpSpinner) Tick(string) {}
func (noOpSpinner) End()        {}
