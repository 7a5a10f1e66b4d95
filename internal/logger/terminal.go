package logger

import (
	"io"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether w is attached to a terminal.
// Used to decide when to use interactive UI elements like spinners.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

