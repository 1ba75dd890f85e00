package playback

import (
	"time"

	"github.com/llehouerou/streamus/internal/playlist"
)

// AddOptions controls AddTracks.
type AddOptions struct {
	// PlayOnAdd starts playback of the first added track.
	PlayOnAdd bool
	// MarkFirstActive activates the first added track.
	MarkFirstActive bool
}

// AddTracks queues tracks that are not queued yet and returns the new items.
func (s *Stream) AddTracks(tracks []playlist.Track, opts AddOptions) []*playlist.Item {
	if opts.PlayOnAdd {
		s.player.SetPlayOnActivate(true)
	}
	added := s.queue.AddTracks(tracks, playlist.AddOptions{
		MarkFirstActive: opts.MarkFirstActive || opts.PlayOnAdd,
	})
	if opts.PlayOnAdd && len(added) == 0 {
		s.player.SetPlayOnActivate(false)
	}
	return added
}

// Play activates item and starts playing it.
func (s *Stream) Play(item *playlist.Item) bool {
	if !s.queue.Contains(item) {
		return false
	}
	if item.Active() {
		s.player.Play()
		return true
	}
	s.player.SetPlayOnActivate(true)
	return s.queue.Activate(item)
}

// Remove takes item out of the queue, advancing if it was active.
func (s *Stream) Remove(item *playlist.Item) bool {
	return s.queue.Remove(item)
}

// Clear empties the queue and stops the player.
func (s *Stream) Clear() {
	s.queue.Clear()
}

// Seek moves the playhead of the loaded track.
func (s *Stream) Seek(pos time.Duration) {
	if s.queue.ActiveItem() == nil {
		return
	}
	s.player.SeekTo(pos.Seconds())
	s.broadcast(func(sub *Subscription) { sub.sendPosition(pos) })
}

// Next skips to the next item, keeping playback going if it was.
func (s *Stream) Next() *playlist.Item {
	if !s.CanGoNext() || s.queue.ActiveItem() == nil {
		return nil
	}
	if s.player.State().IsPlaying() {
		s.player.SetPlayOnActivate(true)
	}
	return s.activateNext(-1)
}

// CanGoNext reports whether Next would do anything.
func (s *Stream) CanGoNext() bool {
	if s.queue.IsEmpty() {
		return false
	}
	if s.modes.Shuffle && s.modes.Repeat != RepeatSong {
		return len(s.queue.NotPlayedRecently()) > 0
	}
	return true
}

// CanTogglePlayPause reports whether there is anything to play.
func (s *Stream) CanTogglePlayPause() bool { return !s.queue.IsEmpty() }

// TogglePlayPause plays or pauses the active item. Repeated presses within
// a short interval are ignored.
func (s *Stream) TogglePlayPause() {
	if !s.CanTogglePlayPause() || !s.toggleThrottle.Allow() {
		return
	}
	if s.queue.ActiveItem() == nil {
		s.player.SetPlayOnActivate(true)
		s.queue.Activate(s.queue.First())
		return
	}
	s.player.ToggleState()
}

// CanGoPrevious reports whether PreviousOrRestart would do anything.
func (s *Stream) CanGoPrevious() bool {
	return s.Previous() != nil || s.player.CurrentTime() > s.restartThreshold
}

// PreviousOrRestart restarts the current track when it has played past
// the restart threshold, and otherwise moves to the previous item.
func (s *Stream) PreviousOrRestart() {
	if !s.previousThrottle.Allow() {
		return
	}
	if s.player.CurrentTime() > s.restartThreshold {
		s.player.SeekTo(0)
		return
	}
	s.ActivatePrevious()
}

// ToggleShuffle flips shuffle mode.
func (s *Stream) ToggleShuffle() {
	s.modes.Shuffle = !s.modes.Shuffle
	s.saveModes()
}

// ToggleRadio flips radio mode.
func (s *Stream) ToggleRadio() {
	s.modes.Radio = !s.modes.Radio
	s.saveModes()
}

// CycleRepeat moves to the next repeat mode.
func (s *Stream) CycleRepeat() {
	s.SetRepeat(s.modes.Repeat.Next())
}

// SetRepeat sets the repeat mode.
func (s *Stream) SetRepeat(mode RepeatMode) {
	s.modes.Repeat = mode
	s.modes = s.modes.normalized()
	s.saveModes()
}

// SetShuffle sets shuffle mode.
func (s *Stream) SetShuffle(on bool) {
	if s.modes.Shuffle == on {
		return
	}
	s.ToggleShuffle()
}
