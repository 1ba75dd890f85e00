// internal/app/messages.go
package app

import (
	"time"

	"github.com/llehouerou/streamus/internal/playback"
)

// TickMsg refreshes the progress bar.
type TickMsg time.Time

// streamErrorMsg reports a skipped track or a failed fetch.
type streamErrorMsg playback.ErrorEvent

// trackChangedMsg follows every activation.
type trackChangedMsg playback.TrackChange

// streamUpdateMsg covers the events that only need a redraw.
type streamUpdateMsg struct{}

// streamClosedMsg is sent once the subscription ends.
type streamClosedMsg struct{}
