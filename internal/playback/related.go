package playback

import (
	"context"

	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/playlist"
)

// fetchRelated loads related tracks for item in the background and stores
// them on the dispatcher. Results for items no longer queued are dropped.
func (s *Stream) fetchRelated(item *playlist.Item) {
	if s.related == nil || s.closed {
		return
	}
	seed := item.Track
	ctx, cancel := context.WithTimeout(s.ctx, s.relatedTimeout)
	go func() {
		defer cancel()
		tracks, err := s.related.Related(ctx, seed)
		s.d.Post(func() { s.applyRelated(item, tracks, err) })
	}()
}

func (s *Stream) applyRelated(item *playlist.Item, tracks []playlist.Track, err error) {
	if s.closed {
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Str("track", item.Track.ID).Msg("fetching related tracks failed")
		s.broadcast(func(sub *Subscription) {
			sub.sendError(ErrorEvent{Operation: errmsg.OpRelatedTracks, TrackID: item.Track.ID, Err: err})
		})
		return
	}
	if !s.queue.SetRelatedTracks(item, tracks) {
		s.log.Debug().Str("track", item.Track.ID).Msg("dropping related tracks for removed item")
	}
}
