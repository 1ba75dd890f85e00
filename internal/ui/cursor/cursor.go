// Package cursor tracks a selection and scroll window over a list whose
// length is owned by the caller.
package cursor

// Cursor is a position plus the index of the first visible row.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below pos
}

// New creates a Cursor that keeps margin rows of context around the
// selection when scrolling.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int    { return c.pos }
func (c Cursor) Offset() int { return c.offset }

// Move shifts the selection by delta, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects pos, clamped to the list. It is a no-op on an empty list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.EnsureVisible(listLen, height)
}

// EnsureVisible scrolls so the selection sits inside the margin.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// ClampToBounds pulls the cursor back inside a list that shrank and
// reports whether it moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	old := *c
	if listLen == 0 {
		c.pos, c.offset = 0, 0
	} else {
		c.pos = clamp(c.pos, listLen-1)
		c.offset = clamp(c.offset, listLen-1)
	}
	return *c != old
}

// VisibleRange returns the half-open range of rows on screen.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// Reset selects the first row.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// HandleKey applies list navigation keys and reports whether key was one.
// Supported keys: j/down, k/up, g/home, G/end, ctrl+d, ctrl+u.
func (c *Cursor) HandleKey(key string, listLen, height int) bool {
	switch key {
	case "j", "down":
		c.Move(1, listLen, height)
	case "k", "up":
		c.Move(-1, listLen, height)
	case "g", "home":
		c.Reset()
	case "G", "end":
		c.Jump(listLen-1, listLen, height)
	case "ctrl+d":
		c.Move(max(height/2, 1), listLen, height)
	case "ctrl+u":
		c.Move(-max(height/2, 1), listLen, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
