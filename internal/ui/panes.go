package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// box is the outer size of a bordered pane.
type box struct {
	width  int
	height int
}

// inner is the area left inside the border.
func (b box) inner() box {
	return box{width: max(b.width-2, 0), height: max(b.height-2, 0)}
}

// layoutBoxes holds the pane sizes computed for the current window.
type layoutBoxes struct {
	table   box
	detail  box
	stacked bool
}

// chromeHeight is the number of lines outside the panes.
func (m Model) chromeHeight() int {
	// header + search line + footer
	return 3 + len(m.bannerLines())
}

// layout sizes every component for the current window and view.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	body := max(m.height-m.chromeHeight(), 4)

	var boxes layoutBoxes
	if m.width < LayoutCompactWidth {
		boxes.stacked = true
		boxes.table = box{width: m.width, height: body}
		if m.view.Selected != nil {
			detailHeight := min(CompactDetailHeight, body/2)
			boxes.table.height = body - detailHeight
			boxes.detail = box{width: m.width, height: detailHeight}
		}
	} else {
		detailWidth := max(m.width*LayoutDetailPercent/100, LayoutDetailMinWidth)
		boxes.detail = box{width: detailWidth, height: body}
		boxes.table = box{width: m.width - detailWidth, height: body}
	}
	m.boxes = boxes

	inner := boxes.table.inner()
	m.table.SetWidth(inner.width)
	m.table.SetHeight(max(inner.height, 1))

	detail := boxes.detail.inner()
	m.detail.Width = detail.width
	m.detail.Height = detail.height

	m.search.Width = max(m.width-8, 10)
	m.help.Width = m.width

	m.logView.Width = max(m.width-6, 10)
	m.logView.Height = max(m.height-6, 3)
}

// renderMain renders the full panel.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader()}
	parts = append(parts, m.bannerLines()...)
	parts = append(parts, m.renderSearchLine())

	tablePane := m.renderTablePane()
	if m.boxes.stacked {
		parts = append(parts, tablePane)
		if m.view.Selected != nil {
			parts = append(parts, m.renderDetailPane())
		}
	} else {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, tablePane, m.renderDetailPane()))
	}

	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTitledBox renders content in a box with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 1))
	titleWidth := runewidth.StringWidth(title) + 2
	leftPad := max((innerWidth-titleWidth)/2, 0)
	rightPad := max(innerWidth-titleWidth-leftPad, 0)

	lines := make([]string, 0, height)
	lines = append(lines, bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle)+
		bg.Render(" "+title+" ", titleStyle)+
		bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle))

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	lines = append(lines, bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle))
	return strings.Join(lines, "\n")
}
