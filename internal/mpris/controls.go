// Package mpris exposes the stream to desktop media controls over the
// MPRIS D-Bus interface.
package mpris

import (
	"context"
	"time"

	"github.com/llehouerou/streamus/internal/loop"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
)

// callTimeout bounds how long a D-Bus call waits for the dispatcher.
const callTimeout = 2 * time.Second

// Stream is the part of the sequencer media controls drive.
type Stream interface {
	TogglePlayPause()
	CanTogglePlayPause() bool
	Next() *playlist.Item
	CanGoNext() bool
	PreviousOrRestart()
	CanGoPrevious() bool
	Seek(pos time.Duration)
	ActiveItem() *playlist.Item
	Modes() playback.Modes
	SetRepeat(mode playback.RepeatMode)
	SetShuffle(on bool)
}

// Player is the part of the player controller media controls read.
type Player interface {
	State() player.State
	CurrentTime() float64
	Play()
	Pause()
	Volume() int
	SetVolume(volume int)
}

// Controls runs media control requests on the dispatcher. D-Bus calls
// arrive on their own goroutines.
type Controls struct {
	d      loop.Dispatcher
	stream Stream
	player Player
}

// NewControls creates controls for stream and p.
func NewControls(d loop.Dispatcher, stream Stream, p Player) *Controls {
	return &Controls{d: d, stream: stream, player: p}
}

func (c *Controls) do(fn func()) error {
	_, err := query(c, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

func query[T any](c *Controls, fn func() T) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return loop.Call(ctx, c.d, fn)
}

// PlayPause toggles playback.
func (c *Controls) PlayPause() error { return c.do(c.stream.TogglePlayPause) }

// Play starts playback, activating the first item if none is active.
func (c *Controls) Play() error {
	return c.do(func() {
		switch {
		case c.stream.ActiveItem() == nil:
			c.stream.TogglePlayPause()
		case !c.player.State().IsPlaying():
			c.player.Play()
		}
	})
}

// Pause pauses playback.
func (c *Controls) Pause() error {
	return c.do(func() {
		if c.player.State().IsPlaying() {
			c.player.Pause()
		}
	})
}

// Stop pauses and rewinds the active track.
func (c *Controls) Stop() error {
	return c.do(func() {
		c.player.Pause()
		c.stream.Seek(0)
	})
}

func (c *Controls) Next() error {
	return c.do(func() { c.stream.Next() })
}

func (c *Controls) Previous() error { return c.do(c.stream.PreviousOrRestart) }

// Seek moves the playhead by offset, clamped at the start of the track.
func (c *Controls) Seek(offset time.Duration) error {
	return c.do(func() {
		pos := c.currentPosition() + offset
		c.stream.Seek(max(pos, 0))
	})
}

// SetPosition moves the playhead to pos.
func (c *Controls) SetPosition(pos time.Duration) error {
	return c.do(func() { c.stream.Seek(max(pos, 0)) })
}

// State returns the player state.
func (c *Controls) State() (player.State, error) {
	return query(c, c.player.State)
}

// Position returns the playhead position.
func (c *Controls) Position() (time.Duration, error) {
	return query(c, c.currentPosition)
}

func (c *Controls) currentPosition() time.Duration {
	return time.Duration(c.player.CurrentTime() * float64(time.Second))
}

// Current returns the active track.
func (c *Controls) Current() (playlist.Track, bool, error) {
	type result struct {
		track playlist.Track
		ok    bool
	}
	r, err := query(c, func() result {
		if it := c.stream.ActiveItem(); it != nil {
			return result{track: it.Track, ok: true}
		}
		return result{}
	})
	return r.track, r.ok, err
}

// Modes returns the navigation toggles.
func (c *Controls) Modes() (playback.Modes, error) { return query(c, c.stream.Modes) }

func (c *Controls) SetRepeat(mode playback.RepeatMode) error {
	return c.do(func() { c.stream.SetRepeat(mode) })
}

func (c *Controls) SetShuffle(on bool) error {
	return c.do(func() { c.stream.SetShuffle(on) })
}

func (c *Controls) CanGoNext() (bool, error)     { return query(c, c.stream.CanGoNext) }
func (c *Controls) CanGoPrevious() (bool, error) { return query(c, c.stream.CanGoPrevious) }
func (c *Controls) CanPlay() (bool, error)       { return query(c, c.stream.CanTogglePlayPause) }

// Volume returns the volume between 0 and 1.
func (c *Controls) Volume() (float64, error) {
	v, err := query(c, c.player.Volume)
	return float64(v) / 100, err
}

// SetVolume sets the volume from a value between 0 and 1.
func (c *Controls) SetVolume(v float64) error {
	level := int(min(max(v, 0), 1)*100 + 0.5)
	return c.do(func() { c.player.SetVolume(level) })
}
