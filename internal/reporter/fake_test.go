package reporter

import (
	"time"

	"github.com/getlawrence/reporter/internal/logger"
	"github.com/getlawrence/reporter/internal/progressbar"
)

// RecordedCall captures one message sent to the fake logger.
type RecordedCall struct {
	Level   string
	Message string
}

// fakeLogger implements logger.Logger for testing and records every call.
type fakeLogger struct {
	RecordedCalls []RecordedCall
	Spinners      []*fakeSpinner
	Bars          []*fakeBar
	verbose       bool
}

func (f *fakeLogger) record(level, msg string) {
	f.RecordedCalls = append(f.RecordedCalls, RecordedCall{Level: level, Message: msg})
}

func (f *fakeLogger) Success(msg string) { f.record("success", msg) }
func (f *fakeLogger) Error(msg string)   { f.record("error", msg) }
func (f *fakeLogger) Verbose(msg string) { f.record("verbose", msg) }
func (f *fakeLogger) Info(msg string)    { f.record("info", msg) }
func (f *fakeLogger) Warn(msg string)    { f.record("warn", msg) }
func (f *fakeLogger) Log(msg string)     { f.record("log", msg) }

func (f *fakeLogger) SetVerbose(isVerbose bool) { f.verbose = isVerbose }
func (f *fakeLogger) IsVerbose() bool           { return f.verbose }

func (f *fakeLogger) Activity() logger.Spinner {
	s := &fakeSpinner{}
	f.Spinners = append(f.Spinners, s)
	return s
}

func (f *fakeLogger) Progress(format string, opts progressbar.Options) logger.ProgressBar {
	b := &fakeBar{Format: format, Opts: opts, total: opts.Total}
	f.Bars = append(f.Bars, b)
	return b
}

type fakeSpinner struct {
	Labels []string
	Ends   int
}

func (s *fakeSpinner) Tick(label string) { s.Labels = append(s.Labels, label) }
func (s *fakeSpinner) End()              { s.Ends++ }

type fakeBar struct {
	Format string
	Opts   progressbar.Options
	Ends   int
	total  int
	curr   int
}

func (b *fakeBar) Tick()              { b.curr++ }
func (b *fakeBar) SetTotal(total int) { b.total = total }
func (b *fakeBar) Total() int         { return b.total }
func (b *fakeBar) Current() int       { return b.curr }
func (b *fakeBar) End()               { b.Ends++ }

// stepClock returns a fixed time that tests move forward by hand.
type stepClock struct{ t time.Time }

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time          { return c.t }
func (c *stepClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type countingObserver struct {
	messages map[string]int
	started  map[string]int
	finished map[string][]time.Duration
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		messages: map[string]int{},
		started:  map[string]int{},
		finished: map[string][]time.Duration{},
	}
}

func (o *countingObserver) MessageEmitted(level string) { o.messages[level]++ }
func (o *countingObserver) ActivityStarted(kind string) { o.started[kind]++ }
func (o *countingObserver) ActivityFinished(kind string, d time.Duration) {
	o.finished[kind] = append(o.finished[kind], d)
}
