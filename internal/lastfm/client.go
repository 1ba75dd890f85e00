// Package lastfm wraps the parts of the Last.fm API used for discovery.
package lastfm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrMissingTrack is returned when a lookup has no artist or track name.
var ErrMissingTrack = errors.New("artist and track are required")

// Client wraps the Last.fm API for similarity lookups. Similarity calls
// need only the API key; the secret is kept for signed methods.
type Client struct {
	api *lastfm.Api
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret)}
}

// SimilarTracks fetches tracks similar to artist/track, best match first.
func (c *Client) SimilarTracks(artist, track string, limit int) ([]SimilarTrack, error) {
	artist, track = strings.TrimSpace(artist), strings.TrimSpace(track)
	if artist == "" || track == "" {
		return nil, ErrMissingTrack
	}

	params := lastfm.P{
		"artist":      artist,
		"track":       track,
		"autocorrect": 1,
	}
	if limit > 0 {
		params["limit"] = limit
	}

	result, err := c.api.Track.GetSimilar(params)
	if err != nil {
		return nil, fmt.Errorf("get similar tracks: %w", err)
	}

	tracks := make([]SimilarTrack, 0, len(result.Tracks))
	for i, t := range result.Tracks {
		if t.Name == "" || t.Artist.Name == "" {
			continue
		}
		tracks = append(tracks, SimilarTrack{
			Artist: t.Artist.Name,
			Name:   t.Name,
			Match:  parseMatch(t.Match),
			Rank:   i + 1,
		})
	}
	return tracks, nil
}

// parseMatch parses Last.fm's similarity score; failures count as 0.
func parseMatch(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
