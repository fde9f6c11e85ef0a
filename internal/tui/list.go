package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each session occupies.
const linesPerItem = 2

// renderList renders the left panel: the filtered session list with
// scrolling.
func (m model) renderList(width, height int) string {
	if len(m.filtered) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
		return empty
	}

	var lines []string
	for i, it := range m.filtered {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatItemLines(it, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItemLines formats one session as two lines:
//
//	line 1: [>] MM-DD  Nmsg  title
//	line 2:     session id (dimmed)
func formatItemLines(it Item, width int, selected bool) []string {
	date := "--"
	if !it.Session.LastTime.IsZero() {
		date = it.Session.LastTime.Format("01-02")
	}
	count := fmt.Sprintf("%dmsg", it.Session.MessageCount)

	title := strings.ReplaceAll(it.Session.Title(), "\n", " ")
	titleMax := width - 2 - 6 - len(count) - 3
	if titleMax < 0 {
		titleMax = 0
	}
	if runewidth.StringWidth(title) > titleMax {
		title = runewidth.Truncate(title, titleMax, "")
	}

	line1 := fmt.Sprintf("%s  %s  %s", date, count, title)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	id := it.Session.ID
	idMax := width - 4
	if idMax < 0 {
		idMax = 0
	}
	if runewidth.StringWidth(id) > idMax {
		id = runewidth.Truncate(id, idMax, "")
	}
	line2 := "    " + styleListDim.Render(id)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
