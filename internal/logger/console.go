package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/getlawrence/reporter/internal/elapsed"
	"github.com/getlawrence/reporter/internal/progressbar"
)

// Console prints category-prefixed lines ("success ...", "warning ...") and
// animates spinners in place when attached to a terminal.
type Console struct {
	mu          sync.Mutex
	out         io.Writer
	errOut      io.Writer
	renderer    *lipgloss.Renderer
	styles      Styles
	interactive bool
	verbose     bool
	now         func() time.Time
	started     time.Time
	frames      spinner.Spinner
	spinners    []*consoleSpinner
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithErrorOutput routes error and warning lines to w.
func WithErrorOutput(w io.Writer) ConsoleOption {
	return func(c *Console) { c.errOut = w }
}

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) ConsoleOption {
	return func(c *Console) { c.interactive = interactive }
}

// WithColorProfile forces a color profile instead of detecting one from the output.
func WithColorProfile(p termenv.Profile) ConsoleOption {
	return func(c *Console) { c.renderer.SetColorProfile(p) }
}

// WithVerbose sets the initial verbosity.
func WithVerbose(verbose bool) ConsoleOption {
	return func(c *Console) { c.verbose = verbose }
}

// WithClock overrides the clock used for verbose timestamps.
func WithClock(now func() time.Time) ConsoleOption {
	return func(c *Console) { c.now = now }
}

// NewConsole creates a Console writing to out. Errors and warnings also go to
// out unless WithErrorOutput is given.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		out:         out,
		errOut:      out,
		renderer:    lipgloss.NewRenderer(out),
		interactive: IsInteractive(out),
		now:         time.Now,
		frames:      spinner.MiniDot,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.styles = NewStyles(c.renderer)
	c.started = c.now()
	return c
}

// Renderer returns the renderer used for this console's colors.
func (c *Console) Renderer() *lipgloss.Renderer {
	return c.renderer
}

func (c *Console) Success(msg string) {
	c.println(c.out, c.styles.Success.Render("success")+" "+msg)
}

func (c *Console) Error(msg string) {
	c.println(c.errOut, c.styles.Error.Render("error")+" "+msg)
}

func (c *Console) Info(msg string) {
	c.println(c.out, c.styles.Info.Render("info")+" "+msg)
}

func (c *Console) Warn(msg string) {
	c.println(c.errOut, c.styles.Warn.Render("warning")+" "+msg)
}

// Verbose prefixes the message with the seconds elapsed since the console was created.
func (c *Console) Verbose(msg string) {
	if !c.IsVerbose() {
		return
	}
	prefix := c.styles.Verbose.Render("verbose " + elapsed.Since(c.started, c.now()))
	c.println(c.out, prefix+" "+msg)
}

func (c *Console) Log(msg string) {
	c.println(c.out, msg)
}

func (c *Console) SetVerbose(isVerbose bool) {
	c.mu.Lock()
	c.verbose = isVerbose
	c.mu.Unlock()
}

func (c *Console) IsVerbose() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbose
}

// Progress draws on the error stream, the conventional home of progress output,
// in the console's color profile.
func (c *Console) Progress(format string, opts progressbar.Options) ProgressBar {
	opts.Output = c.errOut
	opts.Interactive = c.interactive
	opts.Renderer = c.renderer
	return progressbar.New(format, opts)
}

func (c *Console) println(w io.Writer, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.spinners) > 0 {
		// the next frame redraws the spinner below this line
		fmt.Fprint(c.out, clearLine)
	}
	fmt.Fprintln(w, line)
}
