package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/jobpanel/internal/jobview"
)

// markerWidth is the gutter column that flags the selected job.
const markerWidth = 1

// cellPadding is the horizontal padding bubbles/table adds around each cell.
const cellPadding = 2

// columnWeights split the available table width, in percent.
var columnWeights = map[jobview.Column]int{
	jobview.ColumnTags:      22,
	jobview.ColumnJobType:   20,
	jobview.ColumnStatus:    12,
	jobview.ColumnPayloadID: 28,
	jobview.ColumnStartTime: 18,
}

var statusGlyphs = map[jobview.Status]string{
	jobview.StatusQueued:    "○",
	jobview.StatusRunning:   "●",
	jobview.StatusCompleted: "✓",
	jobview.StatusFailed:    "✗",
	jobview.StatusRevoked:   "⊘",
	jobview.StatusDeduped:   "≡",
	jobview.StatusOffline:   "!",
	jobview.StatusUnknown:   "?",
}

func newJobTable() table.Model {
	return table.New(
		table.WithColumns(jobColumns(0, jobview.ColumnNone, false)),
		table.WithFocused(true),
	)
}

// jobColumns lays out the gutter plus one column per sortable field.
func jobColumns(width int, sortCol jobview.Column, desc bool) []table.Column {
	cols := jobview.Columns()
	avail := width - (len(cols)+1)*cellPadding - markerWidth
	if minimum := len(cols) * 4; avail < minimum {
		avail = minimum
	}

	out := make([]table.Column, 0, len(cols)+1)
	out = append(out, table.Column{Title: "", Width: markerWidth})
	used := 0
	for i, col := range cols {
		w := avail * columnWeights[col] / 100
		if i == len(cols)-1 {
			w = avail - used
		}
		used += w
		out = append(out, table.Column{Title: columnTitle(col, sortCol, desc), Width: w})
	}
	return out
}

// columnTitle appends the sort arrow to the sorted column.
func columnTitle(col, sortCol jobview.Column, desc bool) string {
	if col != sortCol {
		return col.Title()
	}
	return col.Title() + ternary(desc, " ▼", " ▲")
}

// syncTable rebuilds the table rows for the current page, keeping the
// cursor on the job it pointed at when that job is still visible.
func (m *Model) syncTable(prevID string) {
	m.table.SetColumns(jobColumns(m.boxes.table.inner().width, m.view.SortColumn, m.view.SortDescending))

	rows := make([]table.Row, 0, len(m.view.Rows))
	cursor := m.table.Cursor()
	for i, job := range m.view.Rows {
		rows = append(rows, m.jobRow(job))
		if prevID != "" && job.PayloadID == prevID {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	m.table.SetCursor(max(cursor, 0))
}

func (m Model) jobRow(job jobview.JobRecord) table.Row {
	marker := " "
	if m.view.IsSelected(job.PayloadID) {
		marker = "▶"
	}
	return table.Row{
		marker,
		strings.Join(job.Tags, ", "),
		job.JobType,
		statusLabel(job.Status),
		job.PayloadID,
		formatTimestamp(job.StartTime),
	}
}

func statusLabel(status jobview.Status) string {
	glyph, ok := statusGlyphs[status]
	if !ok {
		glyph = statusGlyphs[jobview.StatusUnknown]
	}
	return glyph + " " + status.String()
}

// renderTablePane renders the job table or its empty state.
func (m Model) renderTablePane() string {
	box := m.boxes.table
	title := fmt.Sprintf("Jobs (%d)", m.view.Matched)
	if m.view.Query != "" {
		title = fmt.Sprintf("Jobs (%d of %d)", m.view.Matched, m.view.Loaded)
	}

	var content string
	if m.view.Empty() {
		content = m.renderEmptyState(box.inner().width)
	} else {
		content = m.table.View()
	}
	return m.renderTitledBox(title, content, box.width, box.height, m.focus == paneTable)
}

// renderEmptyState explains why the table has no rows.
func (m Model) renderEmptyState(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	var msg string
	switch {
	case m.view.Loaded == 0 && m.view.Phase == jobview.PhaseLoading:
		msg = m.spinner.View() + " Loading jobs..."
	case m.view.Loaded == 0:
		msg = "No jobs found"
	default:
		msg = fmt.Sprintf("No jobs match %q", m.view.Query)
	}
	return "\n" + styles.MutedText.Width(width).Align(lipgloss.Center).Render(msg)
}
