package player

import "github.com/llehouerou/streamus/internal/widget"

// State is the playback state as seen by the rest of the application.
//
// It mirrors what the widget reports, with one exception: the widget's
// "cued" state is never exposed, it is reported as Paused.
//
//	Unstarted ──load──► Buffering ──► Playing ◄──► Paused
//	                        ▲            │
//	                        └───seek─────┤
//	                                     ▼
//	                                   Ended
type State int

const (
	Unstarted State = iota
	Playing
	Paused
	Buffering
	Ended
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "Unstarted"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Buffering:
		return "Buffering"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsPlaying reports whether the state means playback is under way.
func (s State) IsPlaying() bool {
	return s == Playing || s == Buffering
}

var rawStates = map[widget.RawState]State{
	widget.RawUnstarted: Unstarted,
	widget.RawEnded:     Ended,
	widget.RawPlaying:   Playing,
	widget.RawPaused:    Paused,
	widget.RawBuffering: Buffering,
}

// stateFromRaw maps a widget state. The second result is false for states
// that had to be coerced to Paused (cued, unknown).
func stateFromRaw(raw widget.RawState) (State, bool) {
	if s, ok := rawStates[raw]; ok {
		return s, true
	}
	return Paused, false
}
