package radio

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/lastfm"
	"github.com/llehouerou/streamus/internal/playlist"
)

// Lastfm defaults.
const (
	DefaultMatchThreshold = 0.6
	defaultSimilarLimit   = 25
	defaultResolveLimit   = 10
	searchCandidates      = 5
)

// ErrUnknownArtist is returned when no artist can be guessed for the seed.
var ErrUnknownArtist = errors.New("cannot determine artist")

// SimilarSource looks up similar tracks by artist and name.
type SimilarSource interface {
	SimilarTracks(artist, track string, limit int) ([]lastfm.SimilarTrack, error)
}

// LastfmOptions configures the Last.fm provider.
type LastfmOptions struct {
	// SimilarLimit is how many similar tracks to ask Last.fm for.
	SimilarLimit int
	// ResolveLimit caps how many of them are searched for on the platform.
	ResolveLimit   int
	MatchThreshold float64
	Logger         zerolog.Logger
}

// Lastfm finds related tracks through Last.fm's similar tracks, resolving
// each one to a playable video with a Searcher.
type Lastfm struct {
	src       SimilarSource
	search    Searcher
	limit     int
	resolve   int
	threshold float64
	log       zerolog.Logger
}

// NewLastfm creates a Last.fm backed provider.
func NewLastfm(src SimilarSource, search Searcher, opts LastfmOptions) *Lastfm {
	if opts.SimilarLimit <= 0 {
		opts.SimilarLimit = defaultSimilarLimit
	}
	if opts.ResolveLimit <= 0 {
		opts.ResolveLimit = defaultResolveLimit
	}
	if opts.MatchThreshold <= 0 || opts.MatchThreshold > 1 {
		opts.MatchThreshold = DefaultMatchThreshold
	}
	return &Lastfm{
		src:       src,
		search:    search,
		limit:     opts.SimilarLimit,
		resolve:   opts.ResolveLimit,
		threshold: opts.MatchThreshold,
		log:       opts.Logger.With().Str("component", "lastfm").Logger(),
	}
}

// Related returns playable tracks similar to seed, best Last.fm match first.
func (l *Lastfm) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	artist, title := splitArtistTitle(seed)
	if artist == "" {
		return nil, ErrUnknownArtist
	}

	similar, err := l.src.SimilarTracks(artist, title, l.limit)
	if err != nil {
		return nil, err
	}

	var (
		tracks   []playlist.Track
		errs     []error
		searched int
	)
	for _, s := range similar {
		if searched >= l.resolve {
			break
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		searched++

		candidates, err := l.search.Search(ctx, s.Query(), searchCandidates)
		if err != nil {
			l.log.Debug().Err(err).Str("query", s.Query()).Msg("search failed")
			errs = append(errs, err)
			continue
		}
		if match, ok := bestMatch(s, candidates, l.threshold); ok {
			tracks = append(tracks, match)
		}
	}

	tracks = excludeSeed(tracks, seed.ID)
	if len(tracks) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tracks, nil
}

var _ SimilarSource = (*lastfm.Client)(nil)
