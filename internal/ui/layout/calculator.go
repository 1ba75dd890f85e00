// Package layout computes panel sizes for the main screen.
package layout

// NarrowThreshold is the terminal width below which the results panel is
// stacked under the queue instead of beside it.
const NarrowThreshold = 100

// Fixed rows outside the list panels.
const (
	HeaderHeight = 1
	StatusHeight = 1
	SearchHeight = 1
)

// Opts describes what is on screen besides the lists.
type Opts struct {
	PlayerBarHeight int
	Searching       bool // input line and results panel shown
}

// Panels is the computed size of each list panel. Results is zero-sized
// when search is closed.
type Panels struct {
	QueueWidth, QueueHeight     int
	ResultsWidth, ResultsHeight int
}

// ContentHeight is the space left for the list panels.
func ContentHeight(windowHeight int, o Opts) int {
	h := windowHeight - HeaderHeight - StatusHeight - o.PlayerBarHeight
	if o.Searching {
		h -= SearchHeight
	}
	return max(h, 0)
}

// IsNarrow reports whether width calls for stacked panels.
func IsNarrow(width int) bool {
	return width < NarrowThreshold
}

// Compute splits the content area between the queue and the results.
func Compute(width, height int, o Opts) Panels {
	content := ContentHeight(height, o)
	if !o.Searching {
		return Panels{QueueWidth: width, QueueHeight: content}
	}
	if IsNarrow(width) {
		results := content / 2
		return Panels{
			QueueWidth: width, QueueHeight: content - results,
			ResultsWidth: width, ResultsHeight: results,
		}
	}
	results := width / 2
	return Panels{
		QueueWidth: width - results, QueueHeight: content,
		ResultsWidth: results, ResultsHeight: content,
	}
}
