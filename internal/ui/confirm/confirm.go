// Package confirm provides a yes/no confirmation prompt.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/ui/styles"
)

// Result is sent when the prompt is answered. Context is passed through
// from Show.
type Result struct {
	Confirmed bool
	Context   any
}

// Model is a single-line prompt shown in place of the status line.
type Model struct {
	message string
	context any
	active  bool
}

// Show displays message and waits for an answer.
func (m *Model) Show(message string, context any) {
	m.message = message
	m.context = context
	m.active = true
}

// Active reports whether a prompt is pending.
func (m Model) Active() bool { return m.active }

// Update answers the prompt on y/enter or n/esc. Other keys are swallowed
// while the prompt is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	var confirmed bool
	switch keyMsg.String() {
	case "enter", "y", "Y":
		confirmed = true
	case "esc", "n", "N":
	default:
		return m, nil
	}

	res := Result{Confirmed: confirmed, Context: m.context}
	m = Model{}
	return m, func() tea.Msg { return res }
}

// View renders the prompt, or nothing when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return styles.T().S().Warning.Render(m.message) +
		styles.T().S().Subtle.Render("  [y/N]")
}
