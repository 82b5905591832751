package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleLogsKey scrolls the log overlay or closes it.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), msg.String() == "q":
		m.showLogs = false
		return m, nil
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// setLogLines fills the log overlay, newest line in view.
func (m *Model) setLogLines(msg logLinesMsg) {
	var content string
	switch {
	case msg.err != nil:
		content = "Could not read " + m.logFile + ": " + msg.err.Error()
	case len(msg.lines) == 0:
		content = "No log entries in " + m.logFile
	default:
		content = strings.Join(msg.lines, "\n")
	}
	m.logView.SetContent(content)
	m.logView.GotoBottom()
}

// renderLogs renders the panel log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Panel log") + "  " +
		styles.FaintText.Render(truncateMiddle(m.logFile, max(m.logView.Width-14, 10)))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(title+"\n"+m.logView.View()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
