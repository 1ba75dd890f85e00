package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/ui"
	"github.com/llehouerou/streamus/internal/ui/render"
	"github.com/llehouerou/streamus/internal/ui/styles"
)

const durationWidth = 8

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	height := max(m.listHeight(), 0)

	header := m.renderHeader(innerWidth)
	lines := make([]string, 0, height+2)
	lines = append(lines, header, render.Separator(innerWidth))

	switch {
	case len(m.rows) == 0 && height > 0:
		lines = append(lines, styles.T().S().Subtle.Render(render.TruncateAndPad(" "+m.empty, innerWidth)))
		for range height - 1 {
			lines = append(lines, render.Pad("", innerWidth))
		}
	default:
		start, end := m.cursor.VisibleRange(len(m.rows), height)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, innerWidth))
		}
		for range height - (end - start) {
			lines = append(lines, render.Pad("", innerWidth))
		}
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderHeader(width int) string {
	text := fmt.Sprintf("%s (%d)", m.title, len(m.rows))
	if len(m.rows) > 0 && m.IsFocused() {
		text = fmt.Sprintf("%s (%d/%d)", m.title, m.cursor.Pos()+1, len(m.rows))
	}
	return styles.PanelTitle(render.TruncateAndPad(text, width), m.IsFocused())
}

func (m Model) renderRow(idx, width int) string {
	row := m.rows[idx]

	prefix := "  "
	if row.Active {
		prefix = icons.Play() + " "
	}
	prefixWidth := lipgloss.Width(prefix)

	var dur string
	if row.Track.Duration > 0 {
		dur = render.FormatDuration(row.Track.Duration)
	}
	content := max(width-prefixWidth-durationWidth, 0)
	titleWidth := content * 3 / 5
	authorWidth := content - titleWidth

	line := prefix +
		render.TruncateAndPad(row.Track.Title, titleWidth) +
		render.TruncateAndPad(row.Track.Author, authorWidth) +
		fmt.Sprintf("%*s", durationWidth, dur)

	return m.rowStyle(idx, row).Render(render.TruncateAndPad(line, width))
}

func (m Model) rowStyle(idx int, row Row) lipgloss.Style {
	s := styles.T().S()
	base := s.Base
	switch {
	case row.Active:
		base = s.Active
	case row.Played:
		base = s.Played
	}
	if idx == m.cursor.Pos() && m.IsFocused() {
		return s.Cursor.Inherit(base)
	}
	return base
}
