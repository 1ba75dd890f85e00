// Package radio finds tracks related to a seed track. The stream uses it to
// keep playing once the queue runs out in radio mode.
package radio

import (
	"context"
	"errors"

	"github.com/llehouerou/streamus/internal/playlist"
)

// Provider fetches tracks related to a seed track.
type Provider interface {
	Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error)
}

// Searcher resolves a free-text query to playable tracks.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]playlist.Track, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, seed playlist.Track) ([]playlist.Track, error)

func (f ProviderFunc) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	return f(ctx, seed)
}

// Chain asks each provider in turn; the first non-empty result wins.
type Chain []Provider

// Related returns the first non-empty result. When every provider fails
// the errors are joined; when some succeed empty, the result is empty.
func (c Chain) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	var errs []error
	for _, p := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tracks, err := p.Related(ctx, seed)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(tracks) > 0 {
			return tracks, nil
		}
	}
	if len(errs) == len(c) {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}

// excludeSeed drops the seed and duplicate ids, keeping order.
func excludeSeed(tracks []playlist.Track, seedID string) []playlist.Track {
	seen := map[string]bool{seedID: true}
	out := tracks[:0:0]
	for _, t := range tracks {
		if t.IsZero() || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
