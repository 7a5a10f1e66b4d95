package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/getlawrence/reporter/internal/progressbar"
)

const (
	kindField     = "kind"
	activityField = "activity"
)

// Structured emits one JSON object per message, for CI logs and other
// machine consumers. Verbose messages are logged at debug level and only
// pass the level filter while verbose mode is on.
type Structured struct {
	log   *zap.Logger
	level zap.AtomicLevel
}

// NewStructured writes JSON lines to w.
func NewStructured(w io.Writer) *Structured {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), level)
	return NewStructuredWithCore(core, level)
}

// NewStructuredWithCore wraps an existing core. level must be the enabler
// the core filters on, so SetVerbose can move it.
func NewStructuredWithCore(core zapcore.Core, level zap.AtomicLevel) *Structured {
	return &Structured{log: zap.New(core), level: level}
}

func (s *Structured) Success(msg string) {
	s.log.Info(msg, zap.String(kindField, "success"))
}

func (s *Structured) Error(msg string) {
	s.log.Error(msg, zap.String(kindField, "error"))
}

func (s *Structured) Verbose(msg string) {
	s.log.Debug(msg, zap.String(kindField, "verbose"))
}

func (s *Structured) Info(msg string) {
	s.log.Info(msg, zap.String(kindField, "info"))
}

func (s *Structured) Warn(msg string) {
	s.log.Warn(msg, zap.String(kindField, "warning"))
}

func (s *Structured) Log(msg string) {
	s.log.Info(msg, zap.String(kindField, "log"))
}

func (s *Structured) SetVerbose(isVerbose bool) {
	if isVerbose {
		s.level.SetLevel(zapcore.DebugLevel)
		return
	}
	s.level.SetLevel(zapcore.InfoLevel)
}

func (s *Structured) IsVerbose() bool {
	return s.level.Enabled(zapcore.DebugLevel)
}

// Sync flushes buffered entries.
func (s *Structured) Sync() error {
	return s.log.Sync()
}

// Activity returns a spinner that records label changes as debug events.
func (s *Structured) Activity() Spinner {
	return &structuredSpinner{log: s.log}
}

// Progress returns a counting bar that never draws and logs a debug event
// when it reaches its total.
func (s *Structured) Progress(format string, opts progressbar.Options) ProgressBar {
	opts.Output = nil
	opts.Interactive = false
	return &structuredBar{Bar: progressbar.New(format, opts), log: s.log}
}

type structuredBar struct {
	*progressbar.Bar
	log      *zap.Logger
	reported bool
}

func (b *structuredBar) Tick() {
	b.Bar.Tick()
	current, total := b.Current(), b.Total()
	if b.reported || current < total {
		return
	}
	b.reported = true
	b.log.Debug("activity progress complete",
		zap.String(kindField, "activity"),
		zap.Int("current", current),
		zap.Int("total", total),
	)
}

type structuredSpinner struct {
	log   *zap.Logger
	label string
}

func (sp *structuredSpinner) Tick(label string) {
	sp.label = label
	sp.log.Debug("activity tick", zap.String(kindField, "activity"), zap.String(activityField, label))
}

func (sp *structuredSpinner) End() {
	sp.log.Debug("activity end", zap.String(kindField, "activity"), zap.String(activityField, sp.label))
}
