package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
)

func newPager() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "Page %d of %d"
	return p
}

// syncPager mirrors the view's page position into the paginator.
func (m *Model) syncPager() {
	m.pager.PerPage = max(m.view.PageSize, 1)
	m.pager.TotalPages = max(m.view.PageCount, 1)
	m.pager.Page = m.view.PageIndex
}

// renderFooter shows the page position, notices and short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	left := bg.Render(m.pager.View(), styles.Text) + bg.Spaces(2) +
		bg.Render(fmt.Sprintf("%d/page", m.view.PageSize), styles.MutedText)
	if m.flash != "" {
		left += bg.Spaces(2) + bg.Render(m.flash, styles.InfoText)
	}
	return m.renderFooterLine(left, m.help.View(m.keys))
}
