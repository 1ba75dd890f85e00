package playlist

import (
	"slices"

	"github.com/google/uuid"
)

// Item is a track placed in the queue along with its queue-specific state.
type Item struct {
	// ID is the server id once synced, or a temporary local id.
	ID    string
	Track Track
	// Title starts as the track title but may be renamed by the user.
	Title    string
	Sequence int

	active         bool
	selected       bool
	playedRecently bool
	related        []Track
}

// NewItem wraps a track in a queue item with a temporary local id.
func NewItem(track Track) *Item {
	return &Item{
		ID:    uuid.NewString(),
		Track: track,
		Title: track.Title,
	}
}

func (i *Item) Active() bool         { return i.active }
func (i *Item) Selected() bool       { return i.selected }
func (i *Item) PlayedRecently() bool { return i.playedRecently }

// RelatedTracks returns a copy of the cached related tracks.
func (i *Item) RelatedTracks() []Track {
	return slices.Clone(i.related)
}

// HasRelatedTracks reports whether related tracks have been fetched.
func (i *Item) HasRelatedTracks() bool {
	return len(i.related) > 0
}

// ItemSnapshot is the persisted form of an Item.
type ItemSnapshot struct {
	ID             string  `json:"id"`
	Track          Track   `json:"track"`
	Title          string  `json:"title"`
	Sequence       int     `json:"sequence"`
	Active         bool    `json:"active"`
	PlayedRecently bool    `json:"playedRecently"`
	Related        []Track `json:"related,omitempty"`
}

// Snapshot returns the persisted form of the item.
func (i *Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		ID:             i.ID,
		Track:          i.Track,
		Title:          i.Title,
		Sequence:       i.Sequence,
		Active:         i.active,
		PlayedRecently: i.playedRecently,
		Related:        slices.Clone(i.related),
	}
}

func itemFromSnapshot(s ItemSnapshot) *Item {
	it := &Item{
		ID:             s.ID,
		Track:          s.Track,
		Title:          s.Title,
		Sequence:       s.Sequence,
		active:         s.Active,
		playedRecently: s.PlayedRecently,
		related:        slices.Clone(s.Related),
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Title == "" {
		it.Title = s.Track.Title
	}
	return it
}
