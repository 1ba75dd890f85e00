package playlist

import "slices"

// DefaultHistorySize bounds the play history when no size is configured.
const DefaultHistorySize = 200

// History records the ids of previously active items, most recent first.
type History struct {
	ids     []string
	maxSize int
}

// NewHistory creates an empty history holding at most maxSize ids.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{maxSize: maxSize}
}

// Push records id at the front unless it is already there.
// It reports whether the history changed.
func (h *History) Push(id string) bool {
	if id == "" {
		return false
	}
	if len(h.ids) > 0 && h.ids[0] == id {
		return false
	}
	h.ids = slices.Insert(h.ids, 0, id)

	// Trim oldest entries if over limit
	if len(h.ids) > h.maxSize {
		h.ids = h.ids[:h.maxSize]
	}
	return true
}

// Front returns the most recent id.
func (h *History) Front() (string, bool) {
	if len(h.ids) == 0 {
		return "", false
	}
	return h.ids[0], true
}

// Pop removes and returns the most recent id.
func (h *History) Pop() (string, bool) {
	id, ok := h.Front()
	if ok {
		h.ids = h.ids[1:]
	}
	return id, ok
}

// Prune removes every occurrence of id.
func (h *History) Prune(id string) bool {
	n := len(h.ids)
	h.ids = slices.DeleteFunc(h.ids, func(v string) bool { return v == id })
	return len(h.ids) != n
}

// Retain drops every id for which keep returns false.
func (h *History) Retain(keep func(id string) bool) {
	h.ids = slices.DeleteFunc(h.ids, func(v string) bool { return !keep(v) })
}

// Clear empties the history.
func (h *History) Clear() {
	h.ids = nil
}

// Len returns the number of recorded ids.
func (h *History) Len() int {
	return len(h.ids)
}

// IDs returns a copy of the recorded ids, most recent first.
func (h *History) IDs() []string {
	return slices.Clone(h.ids)
}

// Restore replaces the history with previously persisted ids.
func (h *History) Restore(ids []string) {
	h.ids = slices.Clone(ids)
	if len(h.ids) > h.maxSize {
		h.ids = h.ids[:h.maxSize]
	}
}
