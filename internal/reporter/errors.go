package reporter

import (
	"path/filepath"
	"strconv"
	"strings"
)

const docsHint = "See our docs page for more info on this error: "

// ErrorDetails describes a failure for display. Only Text is required; every
// other zero-valued field is left out of the report.
type ErrorDetails struct {
	ID       string
	Type     string
	Err      error
	FilePath string
	Location *Location
	Text     string
	DocsURL  string
}

// Location points into FilePath.
type Location struct {
	Start Position
}

// Position is 1-based; zero means unknown.
type Position struct {
	Line   int
	Column int
}

// FormatError renders details as
//
//	#<id> <type> <message>
//
//	<text>
//
//	File: <path>[:line[:column]]
//
//	See our docs page for more info on this error: <url>
func (r *Reporter) FormatError(details ErrorDetails) string {
	var b strings.Builder
	if details.ID != "" {
		b.WriteString(r.styles.Error.Render("#" + details.ID + " "))
	}
	if details.Type != "" {
		b.WriteString(r.styles.Error.Render(details.Type))
		b.WriteString(" ")
	}
	if details.Err != nil {
		b.WriteString(details.Err.Error())
	}
	b.WriteString("\n\n")
	b.WriteString(details.Text)

	if loc := r.location(details); loc != "" {
		b.WriteString("\n\nFile: ")
		b.WriteString(r.styles.Location.Render(loc))
	}
	if details.DocsURL != "" {
		b.WriteString("\n\n" + docsHint)
		b.WriteString(details.DocsURL)
	}
	return b.String()
}

func (r *Reporter) location(details ErrorDetails) string {
	if details.FilePath == "" {
		return ""
	}
	loc := r.relativePath(details.FilePath)
	if loc == "" {
		return ""
	}
	if details.Location == nil || details.Location.Start.Line == 0 {
		return loc
	}
	loc += ":" + strconv.Itoa(details.Location.Start.Line)
	if details.Location.Start.Column != 0 {
		loc += ":" + strconv.Itoa(details.Location.Start.Column)
	}
	return loc
}

// relativePath returns p relative to the working directory. The working
// directory itself yields "".
func (r *Reporter) relativePath(p string) string {
	wd, err := r.workDir()
	if err != nil {
		return p
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(wd, p)
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil {
		return p
	}
	if rel == "." {
		return ""
	}
	return rel
}
