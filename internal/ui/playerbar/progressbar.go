package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/streamus/internal/ui/render"
)

const minBarWidth = 3

// RenderProgressBar renders "▶  1:23  ━━━───  4:56" within width cells.
// Unknown durations show only the position.
func RenderProgressBar(status string, position, duration time.Duration, width int) string {
	pos := render.FormatDuration(position)
	if duration <= 0 {
		return progressTimeStyle().Render(status + "  " + pos)
	}
	dur := render.FormatDuration(duration)

	fixed := lipgloss.Width(status) + lipgloss.Width(pos) + lipgloss.Width(dur) + 6
	barWidth := width - fixed
	if barWidth < minBarWidth {
		return progressTimeStyle().Render(status + "  " + pos + " / " + dur)
	}

	ratio := min(max(float64(position)/float64(duration), 0), 1)
	filled := int(float64(barWidth) * ratio)

	return status + "  " +
		progressTimeStyle().Render(pos) + "  " +
		progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", barWidth-filled)) + "  " +
		progressTimeStyle().Render(dur)
}
