package playback

import (
	"math/rand/v2"

	"github.com/llehouerou/streamus/internal/playlist"
)

func defaultIntn(n int) int { return rand.IntN(n) }

// ActivateNext moves forward after the active item ended. It returns the
// item that became active, or nil when no next item was chosen.
func (s *Stream) ActivateNext() *playlist.Item {
	return s.activateNext(-1)
}

// ActivateNextAfterRemoval moves forward after the active item was removed
// from index.
func (s *Stream) ActivateNextAfterRemoval(index int) *playlist.Item {
	return s.activateNext(index)
}

// activateNext picks and activates the next item. removedIndex is the
// pre-removal index of a deleted active item, or negative after a natural
// end.
func (s *Stream) activateNext(removedIndex int) *playlist.Item {
	deleted := removedIndex >= 0
	current := s.queue.ActiveItem()

	next := s.nextItem(current, removedIndex, deleted)
	if next != nil && current != nil && next != current {
		if s.history.Push(current.ID) {
			s.saveHistory()
		}
	}
	return next
}

func (s *Stream) nextItem(current *playlist.Item, removedIndex int, deleted bool) *playlist.Item {
	if !deleted && s.modes.Repeat == RepeatSong {
		if current == nil {
			return nil
		}
		s.queue.Activate(current)
		return current
	}

	if s.modes.Shuffle {
		candidates := s.queue.NotPlayedRecently()
		if len(candidates) == 0 {
			s.log.Debug().Msg("every item played recently, no shuffle pick")
			return nil
		}
		item := candidates[s.intn(len(candidates))]
		s.queue.Activate(item)
		return item
	}

	nextIndex := removedIndex
	if !deleted {
		nextIndex = s.queue.IndexOf(current) + 1
		if nextIndex <= 0 {
			invariant("activate next", "no active item to advance from")
		}
	}

	n := s.queue.Len()
	if nextIndex < n {
		item := s.queue.At(nextIndex)
		s.queue.Activate(item)
		return item
	}
	if nextIndex > n {
		invariant("activate next", "index %d past queue length %d", nextIndex, n)
	}

	if s.modes.Repeat == RepeatAll {
		item := s.queue.First()
		s.queue.Activate(item)
		return item
	}
	if s.modes.Radio {
		if item := s.radioItem(); item != nil {
			return item
		}
		s.log.Info().Msg("radio has no related track, stopping at queue end")
	}

	// Ran off the end: park on an item without playing it.
	item := s.queue.First()
	if deleted {
		item = s.queue.Last()
	}
	s.queue.Activate(item)
	s.player.Pause()
	return nil
}

func (s *Stream) radioItem() *playlist.Item {
	track, ok := s.queue.RandomRelatedTrack()
	if !ok {
		return nil
	}
	added := s.queue.AddTracks([]playlist.Track{track}, playlist.AddOptions{MarkFirstActive: true})
	if len(added) == 0 {
		return nil
	}
	return added[0]
}

// Previous returns the item ActivatePrevious would activate, or nil.
func (s *Stream) Previous() *playlist.Item {
	if id, ok := s.history.Front(); ok {
		return s.queue.Get(id)
	}

	active := s.queue.ActiveItem()
	switch {
	case s.modes.Repeat == RepeatSong:
		return active
	case s.modes.Shuffle:
		candidates := s.queue.NotPlayedRecently()
		if len(candidates) == 0 {
			return nil
		}
		return candidates[s.intn(len(candidates))]
	}

	if active == nil {
		return nil
	}
	idx := s.queue.IndexOf(active)
	if idx > 0 {
		return s.queue.At(idx - 1)
	}
	if s.modes.Repeat == RepeatAll {
		return s.queue.Last()
	}
	return nil
}

// ActivatePrevious moves backward. It returns the activated item, or nil.
func (s *Stream) ActivatePrevious() *playlist.Item {
	prev := s.Previous()
	if prev == nil {
		return nil
	}
	if prev.Active() {
		s.queue.Activate(prev)
		return prev
	}
	if _, ok := s.history.Pop(); ok {
		s.saveHistory()
	}
	s.queue.Activate(prev)
	return prev
}
