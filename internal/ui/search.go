package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/jobpanel/internal/jobview"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "tags, type, status or payload id"
	ti.CharLimit = 128
	return ti
}

// startSearch focuses the search input, remembering the query to restore on esc.
func (m *Model) startSearch() tea.Cmd {
	m.searching = true
	m.searchStart = m.view.Query
	m.search.SetValue(m.view.Query)
	m.search.CursorEnd()
	return m.search.Focus()
}

// handleSearchKey processes keys while the search input has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		m.debouncer.Cancel()
		m.searching = false
		m.search.Blur()
		m.applyQuery(m.search.Value())
		return m, nil

	case tea.KeyEsc:
		m.debouncer.Cancel()
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.searchStart)
		m.applyQuery(m.searchStart)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.queueQuery(value)
	}
	return m, cmd
}

// queueQuery applies q once typing pauses for the debounce delay.
func (m Model) queueQuery(q string) {
	ch := m.queries
	m.debouncer.Trigger(func() {
		offerQuery(ch, q)
	})
}

// offerQuery puts q in the single-slot channel, replacing any unread query.
func offerQuery(ch chan string, q string) {
	for {
		select {
		case ch <- q:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// waitForQuery delivers the next debounced query to Update.
func waitForQuery(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-ch
		if !ok {
			return nil
		}
		return queryMsg(q)
	}
}

// handleQuery applies a debounced query unless the input has moved on.
func (m *Model) handleQuery(q string) {
	if q != m.search.Value() || q == m.view.Query {
		return
	}
	m.applyQuery(q)
}

func (m *Model) applyQuery(q string) {
	if q == m.view.Query {
		return
	}
	m.dispatch(jobview.QueryChanged{Query: q})
	m.table.SetCursor(0)
}

// renderSearchLine shows the search input, or the active query when not editing.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	if m.searching {
		return bg.FillLine(m.search.View(), m.width)
	}
	if m.view.Query != "" {
		line := bg.Render("Filter:", styles.MutedText) + bg.Space() +
			bg.Render(truncate(m.view.Query, max(m.width-30, 10)), styles.AccentText) + bg.Spaces(2) +
			bg.Render("/ to edit, esc to clear", styles.FaintText)
		return bg.FillLine(line, m.width)
	}
	return bg.FillLine(bg.Render("Press / to search", styles.FaintText), m.width)
}
