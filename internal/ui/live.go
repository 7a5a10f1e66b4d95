// Package ui provides the live terminal view: every in-flight activity gets
// its own row at the bottom of the screen while finished messages scroll
// above.
package ui

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getlawrence/reporter/internal/elapsed"
	"github.com/getlawrence/reporter/internal/logger"
	"github.com/getlawrence/reporter/internal/progressbar"
)

// Live is a logger.Logger backed by a Bubble Tea program.
type Live struct {
	program  *tea.Program
	renderer *lipgloss.Renderer
	styles   logger.Styles
	verbose  atomic.Bool
	nextID   atomic.Int64
	started  time.Time
	done     chan struct{}
	err      error
}

var _ logger.Logger = (*Live)(nil)

// NewLive starts the program on out. Call Close to stop it and flush output.
func NewLive(ctx context.Context, out io.Writer, opts ...tea.ProgramOption) *Live {
	if ctx == nil {
		ctx = context.Background()
	}
	base := []tea.ProgramOption{tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx)}
	p := tea.NewProgram(newLiveModel(), append(base, opts...)...)

	renderer := lipgloss.NewRenderer(out)
	l := &Live{
		program:  p,
		renderer: renderer,
		styles:   logger.NewStyles(renderer),
		started:  time.Now(),
		done:     make(chan struct{}),
	}
	go func() {
		defer close(l.done)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			l.err = err
		}
	}()
	return l
}

// Close quits the program and waits for the final frame.
func (l *Live) Close() error {
	l.program.Quit()
	<-l.done
	return l.err
}

// Renderer returns the renderer matching the program's output.
func (l *Live) Renderer() *lipgloss.Renderer {
	return l.renderer
}

func (l *Live) Success(msg string) { l.println(l.styles.Success.Render("success") + " " + msg) }
func (l *Live) Error(msg string)   { l.println(l.styles.Error.Render("error") + " " + msg) }
func (l *Live) Info(msg string)    { l.println(l.styles.Info.Render("info") + " " + msg) }
func (l *Live) Warn(msg string)    { l.println(l.styles.Warn.Render("warning") + " " + msg) }
func (l *Live) Log(msg string)     { l.println(msg) }

func (l *Live) Verbose(msg string) {
	if !l.IsVerbose() {
		return
	}
	l.println(l.styles.Verbose.Render("verbose "+elapsed.Since(l.started, time.Now())) + " " + msg)
}

func (l *Live) SetVerbose(isVerbose bool) { l.verbose.Store(isVerbose) }
func (l *Live) IsVerbose() bool           { return l.verbose.Load() }

func (l *Live) Activity() logger.Spinner {
	return &liveSpinner{live: l, id: l.nextID.Add(1)}
}

func (l *Live) Progress(format string, opts progressbar.Options) logger.ProgressBar {
	clearOnDone := opts.Clear
	opts.Output = nil
	opts.Interactive = false
	return &liveBar{live: l, id: l.nextID.Add(1), bar: progressbar.New(format, opts), clear: clearOnDone}
}

// println prints above the rows. Program.Println blocks once the program has
// exited, so the send is abandoned when done closes.
func (l *Live) println(text string) {
	sent := make(chan struct{})
	go func() {
		l.program.Println(text)
		close(sent)
	}()
	select {
	case <-sent:
	case <-l.done:
	}
}

func (l *Live) send(msg tea.Msg) {
	select {
	case <-l.done:
	default:
		l.program.Send(msg)
	}
}

type liveSpinner struct {
	live *Live
	id   int64
}

func (s *liveSpinner) Tick(label string) {
	s.live.send(rowMsg{id: s.id, text: label, spinner: true})
}

func (s *liveSpinner) End() {
	s.live.send(rowEndMsg{id: s.id})
}

type liveBar struct {
	live  *Live
	id    int64
	bar   *progressbar.Bar
	clear bool
}

func (b *liveBar) Tick() {
	b.bar.Tick()
	if b.bar.Current() >= b.bar.Total() {
		b.live.send(rowEndMsg{id: b.id})
		if !b.clear {
			b.live.println(b.bar.String())
		}
		return
	}
	b.live.send(rowMsg{id: b.id, text: b.bar.String()})
}

func (b *liveBar) SetTotal(total int) {
	b.bar.SetTotal(total)
	b.live.send(rowMsg{id: b.id, text: b.bar.String()})
}

// End drops the row of a bar that stopped short of its total.
func (b *liveBar) End() {
	b.live.send(rowEndMsg{id: b.id})
}

func (b *liveBar) Total() int   { return b.bar.Total() }
func (b *liveBar) Current() int { return b.bar.Current() }
