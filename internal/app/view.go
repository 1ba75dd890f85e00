// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/keymap"
	"github.com/llehouerou/streamus/internal/ui/playerbar"
	"github.com/llehouerou/streamus/internal/ui/render"
	"github.com/llehouerou/streamus/internal/ui/styles"
)

const appTitle = "Streamus"

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.renderHeader()}
	if m.searching {
		parts = append(parts, lipgloss.NewStyle().MaxWidth(m.width).Render(m.input.View()))
	}
	parts = append(parts, m.renderPanels(), m.renderPlayerBar(), m.renderStatus())
	return strings.Join(parts, "\n")
}

func (m Model) renderHeader() string {
	title := styles.Gradient(appTitle, true, styles.T().Primary, styles.T().Secondary)

	var right string
	switch {
	case m.search.Searching():
		right = styles.T().S().Muted.Render(icons.Search() + " searching")
	case m.queue.Len() > 0:
		right = styles.T().S().Subtle.Render("? help")
	}
	return render.Row(" "+title, right+" ", m.width)
}

func (m Model) renderPanels() string {
	queue := m.queue.View()
	if !m.searching {
		return queue
	}
	if m.results.Width() == m.width {
		return queue + "\n" + m.results.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, queue, m.results.View())
}

func (m Model) renderPlayerBar() string {
	s := playerbar.NewState(m.player, m.stream.ActiveItem(), m.stream.Modes(), m.now())
	if m.widget != nil {
		s.Load = playerbar.LoadStatusOf(m.widget, m.reloadKey())
	}
	return playerbar.Render(s, m.width)
}

func (m Model) renderStatus() string {
	if m.confirm.Active() {
		return " " + m.confirm.View()
	}

	text, style := m.status, styles.T().S().Muted
	switch {
	case m.showHelp:
		text = m.helpLine()
	case m.statusErr:
		style = styles.T().S().Error
	}
	return style.Render(render.TruncateAndPad(" "+text, m.width))
}

func (m Model) helpLine() string {
	if m.searching && m.input.Focused() {
		return "enter play · tab results · esc close"
	}
	bindings := keymap.ByContext(keymap.All, "playback")
	bindings = append(bindings, keymap.ByContext(keymap.Panel, "queue")...)
	bindings = append(bindings, keymap.ByContext(keymap.All, "queue")...)
	return keymap.Help(bindings)
}

func (m Model) reloadKey() string {
	if keys := m.keys.KeysFor(keymap.ActionReload); len(keys) > 0 {
		return keys[0]
	}
	return ""
}
