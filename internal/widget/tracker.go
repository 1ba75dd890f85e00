package widget

import "sync"

// Sample is one reading of a polled engine's playback properties.
type Sample struct {
	Paused         bool
	PausedForCache bool
	Seeking        bool
	Position       float64
	HasPosition    bool
}

// State maps the sample to a raw state. A seek buffers like a cache stall.
func (s Sample) State() RawState {
	switch {
	case s.PausedForCache || s.Seeking:
		return RawBuffering
	case s.Paused:
		return RawPaused
	default:
		return RawPlaying
	}
}

// Tracker reports only what changed between samples. States the widget
// reports on its own, such as buffering after a load or ended after the
// last frame, go through Set so that the next sample is compared against
// them.
type Tracker struct {
	mu       sync.Mutex
	state    RawState
	seeking  bool
	position float64
}

// NewTracker creates a tracker in the unstarted state.
func NewTracker() *Tracker {
	return &Tracker{state: RawUnstarted, position: -1}
}

// Set reports s and makes it the reference for the next sample. A pending
// seek is cleared and the position is reported again on the next sample.
func (t *Tracker) Set(events Events, s RawState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seeking {
		t.seeking = false
		events.WidgetSeekingChanged(false)
	}
	t.position = -1
	t.state = s
	events.WidgetStateChanged(s)
}

// Observe reports the differences between s and the previous sample.
// A starting seek is reported before the buffering it causes; a finished
// seek after the state it settles in.
func (t *Tracker) Observe(events Events, s Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s.Seeking && !t.seeking {
		t.seeking = true
		events.WidgetSeekingChanged(true)
	}
	if state := s.State(); state != t.state {
		t.state = state
		events.WidgetStateChanged(state)
	}
	if !s.Seeking && t.seeking {
		t.seeking = false
		events.WidgetSeekingChanged(false)
	}
	if s.HasPosition && s.Position != t.position {
		t.position = s.Position
		events.WidgetTimeChanged(s.Position)
	}
}

// State returns the last reported state.
func (t *Tracker) State() RawState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
