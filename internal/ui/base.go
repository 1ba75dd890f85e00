package ui

// Base carries focus and size for panel models. Embed it to get the
// standard setters.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }
func (b Base) IsFocused() bool          { return b.focused }

func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// ListHeight returns the rows left for list content after overhead.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
