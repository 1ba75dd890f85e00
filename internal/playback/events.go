package playback

import (
	"time"

	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
)

// StateChange is emitted when the player's state changes.
type StateChange struct {
	Previous player.State
	Current  player.State
}

// TrackChange is emitted whenever an item is activated, including
// re-activation of the same item (repeat song, previous on the only item).
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
	ItemID   string
	Index    int
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int // active index, -1 if none
}

// ModeChange is emitted when shuffle, radio or repeat changes.
type ModeChange struct {
	Modes Modes
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when a track is skipped or a fetch fails.
type ErrorEvent struct {
	Operation errmsg.Op
	TrackID   string
	Err       error
}
