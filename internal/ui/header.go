package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("jobpanel", styles.Logo),
		bg.Render("User:", styles.MutedText) + bg.Space() + bg.Render(m.username, styles.Text),
		bg.Render("Jobs:", styles.MutedText) + bg.Space() + bg.Render(fmt.Sprintf("%d", m.view.Loaded), styles.Text),
	}

	if m.view.SortColumn.Valid() {
		parts = append(parts,
			bg.Render("Sort:", styles.MutedText)+bg.Space()+
				bg.Render(columnTitle(m.view.SortColumn, m.view.SortColumn, m.view.SortDescending), styles.AccentText))
	}

	switch m.view.Phase {
	case jobview.PhaseLoading:
		parts = append(parts, bg.Render(m.spinner.View()+" Refreshing...", styles.WarningText))
	case jobview.PhaseError:
		parts = append(parts, bg.Render("● "+classifyConnectionError(m.view.LastError), styles.DangerText))
	default:
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	}

	last := "never"
	if !m.view.LastRefreshed.IsZero() {
		last = m.view.LastRefreshed.Local().Format("15:04:05")
	}
	parts = append(parts, bg.Render("Last updated", styles.MutedText)+bg.Space()+bg.Render(last, styles.Text))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// bannerLines returns the error and warning banners shown under the header.
func (m Model) bannerLines() []string {
	var lines []string
	if m.view.Phase == jobview.PhaseError && m.view.LastError != nil {
		styles := m.theme.Styles().WithBackground(m.theme.Background)
		bg := NewBgStyle(m.theme.Background)
		text := fmt.Sprintf("%s: %s", classifyConnectionError(m.view.LastError), m.view.LastError)
		text = truncate(text, max(m.width-34, 10))
		line := bg.Render(text, styles.DangerText) + bg.Spaces(2) +
			bg.Render("r to retry, esc to dismiss", styles.MutedText)
		lines = append(lines, bg.FillLine(line, m.width))
	}
	if m.view.Dropped > 0 {
		styles := m.theme.Styles().WithBackground(m.theme.Background)
		bg := NewBgStyle(m.theme.Background)
		text := pluralize(m.view.Dropped, "malformed job", "malformed jobs") + " skipped"
		lines = append(lines, bg.FillLine(bg.Render(text, styles.WarningText), m.width))
	}
	return lines
}

// classifyConnectionError returns a short description of a fetch error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *jobsapi.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == 401 || statusErr.Code == 403:
			return "UNAUTHORIZED"
		case statusErr.Code >= 500:
			return "SERVER ERROR"
		default:
			return fmt.Sprintf("HTTP %d", statusErr.Code)
		}
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "decode response"):
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// renderFooterLine joins left and right footer text across the full width.
func (m Model) renderFooterLine(left, right string) string {
	styles := m.theme.Styles()
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Footer.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
