package logger

import "github.com/charmbracelet/lipgloss"

// Basic ANSI palette so output looks the same on 16 color terminals.
var (
	green  = lipgloss.Color("2")
	red    = lipgloss.Color("1")
	blue   = lipgloss.Color("4")
	yellow = lipgloss.Color("3")
	grey   = lipgloss.Color("8")
)

// Styles colors message prefixes and the highlighted parts of error reports.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Verbose lipgloss.Style
	// Location highlights file locations in error reports.
	Location lipgloss.Style
}

// NewStyles builds the palette for a renderer, so color support follows the
// renderer's output rather than stdout.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Success:  r.NewStyle().Foreground(green),
		Error:    r.NewStyle().Foreground(red),
		Info:     r.NewStyle().Foreground(blue),
		Warn:     r.NewStyle().Foreground(yellow),
		Verbose:  r.NewStyle().Foreground(grey),
		Location: r.NewStyle().Foreground(blue),
	}
}
