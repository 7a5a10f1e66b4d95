package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowMsg creates or replaces an in-flight row.
type rowMsg struct {
	id      int64
	text    string
	spinner bool
}

// rowEndMsg removes a row.
type rowEndMsg struct{ id int64 }

type row struct {
	id      int64
	text    string
	spinner bool
}

// liveModel keeps the in-flight activities in start order.
type liveModel struct {
	spin  spinner.Model
	rows  []row
	style lipgloss.Style
}

func newLiveModel() liveModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return liveModel{
		spin:  s,
		style: lipgloss.NewStyle().PaddingLeft(1),
	}
}

func (m liveModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowMsg:
		m.rows = upsertRow(m.rows, row{id: msg.id, text: msg.text, spinner: msg.spinner})
		return m, nil
	case rowEndMsg:
		m.rows = removeRow(m.rows, msg.id)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m liveModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		if r.spinner {
			lines = append(lines, m.style.Render(m.spin.View()+" "+r.text))
			continue
		}
		lines = append(lines, m.style.Render(r.text))
	}
	return strings.Join(lines, "\n") + "\n"
}

func upsertRow(rows []row, r row) []row {
	for i := range rows {
		if rows[i].id == r.id {
			out := append([]row(nil), rows...)
			out[i] = r
			return out
		}
	}
	return append(append([]row(nil), rows...), r)
}

func removeRow(rows []row, id int64) []row {
	out := make([]row, 0, len(rows))
	for _, r := range rows {
		if r.id != id {
			out = append(out, r)
		}
	}
	return out
}
