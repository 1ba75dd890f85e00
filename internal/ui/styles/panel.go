package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered panel style for the given focus state.
func PanelStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// PanelTitle renders a panel heading, bold in the accent color when focused.
func PanelTitle(title string, focused bool) string {
	if focused {
		return T().S().Active.Render(title)
	}
	return T().S().Title.Render(title)
}
