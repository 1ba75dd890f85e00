// Package widget wraps the external video widget that actually plays tracks.
//
// The raw Widget only knows how to execute commands and report what it is
// doing. Adapter adds the load lifecycle on top: preload, retry while the
// widget fails to come up, recovery from fatal widget errors, and the
// "cue without the cued state" workaround.
package widget

import "fmt"

// RawState is the playback state reported by the widget.
type RawState int

const (
	RawUnstarted RawState = -1
	RawEnded     RawState = 0
	RawPlaying   RawState = 1
	RawPaused    RawState = 2
	RawBuffering RawState = 3
	RawCued      RawState = 5
)

func (s RawState) String() string {
	switch s {
	case RawUnstarted:
		return "unstarted"
	case RawEnded:
		return "ended"
	case RawPlaying:
		return "playing"
	case RawPaused:
		return "paused"
	case RawBuffering:
		return "buffering"
	case RawCued:
		return "cued"
	default:
		return fmt.Sprintf("RawState(%d)", int(s))
	}
}

// ErrorCode is an error reported by the widget.
type ErrorCode int

const (
	// ErrReallyBad means the widget itself broke, usually because the
	// network went away. The adapter recovers by reloading the widget.
	ErrReallyBad        ErrorCode = -2
	ErrInvalidParameter ErrorCode = 2
	ErrHTML5            ErrorCode = 5
	ErrVideoNotFound    ErrorCode = 100
	ErrNoPlayEmbedded   ErrorCode = 101
	ErrNoPlayEmbedded2  ErrorCode = 150
)

func (c ErrorCode) String() string {
	switch c {
	case ErrReallyBad:
		return "widget failure"
	case ErrInvalidParameter:
		return "invalid parameter"
	case ErrHTML5:
		return "html5 player error"
	case ErrVideoNotFound:
		return "video not found"
	case ErrNoPlayEmbedded, ErrNoPlayEmbedded2:
		return "video cannot be played embedded"
	default:
		return fmt.Sprintf("error %d", int(c))
	}
}

func (c ErrorCode) Error() string { return c.String() }

// Quality is the widget's playback quality name.
type Quality string

const (
	QualityHighres Quality = "highres"
	QualityDefault Quality = "default"
	QualitySmall   Quality = "small"
)

// VideoOptions selects the video to load.
type VideoOptions struct {
	ID           string
	StartSeconds float64
	Quality      Quality
}

// Events receives raw notifications from a Widget. Implementations must
// accept calls from any goroutine.
type Events interface {
	WidgetReady()
	WidgetStateChanged(state RawState)
	WidgetError(code ErrorCode)
	WidgetTimeChanged(seconds float64)
	WidgetSeekingChanged(seeking bool)
}

// Widget is the raw embedded player.
type Widget interface {
	// Load starts bringing the widget up. Readiness is reported later
	// through events.WidgetReady. Load may be called again to retry.
	Load(events Events) error
	LoadVideoByID(opts VideoOptions) error
	Play() error
	Pause() error
	Stop() error
	SeekTo(seconds float64, allowSeekAhead bool) error
	SetVolume(volume int) error
	Mute() error
	Unmute() error
	SetPlaybackQuality(q Quality) error
	Close() error
}

// Listener receives the adapter's translated events on the owning thread.
type Listener interface {
	ReadyChanged(ready bool)
	LoadingChanged(loading bool)
	LoadAttemptChanged(attempt int)
	StateChanged(state RawState)
	Error(code ErrorCode)
	TimeChanged(seconds float64)
	SeekingChanged(seeking bool)
}
