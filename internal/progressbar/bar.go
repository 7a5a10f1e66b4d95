// Package progressbar renders a single-line, template driven progress bar.
//
// The template understands the tokens :bar, :current, :total, :elapsed,
// :percent, :eta and :rate. Nothing is drawn unless the bar is interactive,
// so piping output to a file or running under tests produces no noise.
package progressbar

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Options configures a Bar.
type Options struct {
	// Total is the number of ticks that completes the bar.
	Total int
	// Width is the number of cells used by the :bar token.
	Width int
	// Clear erases the bar line once it completes instead of leaving it behind.
	Clear bool
	// Output receives rendered frames. Nil disables drawing.
	Output io.Writer
	// Interactive enables drawing; set it when Output is a terminal.
	Interactive bool
	// Renderer supplies the color profile of the fill. Nil detects it from
	// the environment.
	Renderer *lipgloss.Renderer
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

const defaultWidth = 40

// Bar is a progress bar. It is safe for concurrent use.
type Bar struct {
	mu       sync.Mutex
	format   string
	opts     Options
	total    int
	curr     int
	start    time.Time
	complete bool
	ended    bool
	lastDraw string
	fill     progress.Model
}

// New creates a bar from a template such as " [:bar] :current/:total :percent".
func New(format string, opts Options) *Bar {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	profile := termenv.Ascii
	switch {
	case !opts.Interactive:
	case opts.Renderer != nil:
		profile = opts.Renderer.ColorProfile()
	default:
		profile = termenv.EnvColorProfile()
	}

	fill := progress.New(
		progress.WithWidth(opts.Width),
		progress.WithoutPercentage(),
		progress.WithSolidFill("62"),
		progress.WithColorProfile(profile),
	)

	return &Bar{
		format: format,
		opts:   opts,
		total:  opts.Total,
		fill:   fill,
	}
}

// Tick advances the bar by one. Reaching the total draws a final frame and
// terminates the line.
func (b *Bar) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.curr == 0 {
		b.start = b.opts.Now()
	}
	b.curr++
	b.render(false)

	if b.curr >= b.total {
		b.render(true)
		b.complete = true
		b.terminate()
	}
}

// SetTotal replaces the number of ticks that completes the bar.
func (b *Bar) SetTotal(total int) {
	b.mu.Lock()
	b.total = total
	b.mu.Unlock()
}

// Total returns the configured total.
func (b *Bar) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Current returns the number of ticks so far.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.curr
}

// End releases the line of a bar that stops before reaching its total.
// Completed bars have already released it.
func (b *Bar) End() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.complete || b.ended {
		return
	}
	b.ended = true
	if b.lastDraw == "" {
		return
	}
	b.terminate()
}

// Complete reports whether the bar has reached its total at least once.
func (b *Bar) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.complete
}

// String renders the current frame regardless of interactivity.
func (b *Bar) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame()
}

func (b *Bar) frame() string {
	ratio := 0.0
	if b.total > 0 {
		ratio = math.Min(math.Max(float64(b.curr)/float64(b.total), 0), 1)
	}
	percent := math.Floor(ratio * 100)

	var since time.Duration
	if !b.start.IsZero() {
		since = b.opts.Now().Sub(b.start)
	}

	eta := 0.0
	if percent < 100 && b.curr > 0 {
		eta = since.Seconds() * (float64(b.total)/float64(b.curr) - 1)
	}
	if math.IsNaN(eta) || math.IsInf(eta, 0) || eta < 0 {
		eta = 0
	}

	rate := 0.0
	if since > 0 {
		rate = float64(b.curr) / since.Seconds()
	}

	line := strings.NewReplacer(
		":current", fmt.Sprint(b.curr),
		":total", fmt.Sprint(b.total),
		":elapsed", fmt.Sprintf("%.1f", since.Seconds()),
		":eta", fmt.Sprintf("%.1f", eta),
		":percent", fmt.Sprintf("%.0f%%", percent),
		":rate", fmt.Sprintf("%.0f", math.Round(rate)),
	).Replace(b.format)

	return strings.Replace(line, ":bar", b.fill.ViewAs(ratio), 1)
}

func (b *Bar) render(force bool) {
	if !b.opts.Interactive || b.opts.Output == nil {
		return
	}
	line := b.frame()
	if !force && line == b.lastDraw {
		return
	}
	b.lastDraw = line
	fmt.Fprintf(b.opts.Output, "\r%s\033[K", line)
}

func (b *Bar) terminate() {
	if !b.opts.Interactive || b.opts.Output == nil {
		return
	}
	if b.opts.Clear {
		fmt.Fprint(b.opts.Output, "\r\033[2K")
		return
	}
	fmt.Fprintln(b.opts.Output)
}
