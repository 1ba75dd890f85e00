package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamus/internal/ui/styles"
)

func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style { return styles.T().S().Subtle }
