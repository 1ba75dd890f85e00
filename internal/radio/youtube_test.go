package radio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/streamus/internal/playlist"
)

const searchBody = `{
  "items": [
    {"id": {"videoId": "seed"}, "snippet": {"title": "Seed again", "channelTitle": "A"}},
    {"id": {"videoId": "v1"}, "snippet": {"title": "Rock &amp; Roll", "channelTitle": "Band"}},
    {"id": {}, "snippet": {"title": "A channel", "channelTitle": "C"}},
    {"id": {"videoId": "v2"}, "snippet": {"title": "Don&#39;t Stop", "channelTitle": "Other"}}
  ]
}`

const videosBody = `{
  "items": [
    {"id": "v1", "contentDetails": {"duration": "PT3M30S"}},
    {"id": "v2", "contentDetails": {"duration": "PT1H2M"}},
    {"id": "seed", "contentDetails": {"duration": "PT10S"}}
  ]
}`

func newTestYouTube(t *testing.T, handler http.HandlerFunc) *YouTube {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYouTube(YouTubeOptions{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		RelatedLimit: 10,
		Logger:       zerolog.Nop(),
	})
}

func TestYouTube_Related(t *testing.T) {
	var searchQuery, videosQuery map[string][]string
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			searchQuery = r.URL.Query()
			_, _ = w.Write([]byte(searchBody))
		case "/videos":
			videosQuery = r.URL.Query()
			_, _ = w.Write([]byte(videosBody))
		default:
			http.NotFound(w, r)
		}
	})

	tracks, err := yt.Related(context.Background(), playlist.Track{ID: "seed"})
	require.NoError(t, err)

	assert.Equal(t, []string{"seed"}, searchQuery["relatedToVideoId"])
	assert.Equal(t, []string{"video"}, searchQuery["type"])
	assert.Equal(t, []string{"10"}, searchQuery["maxResults"])
	assert.Equal(t, []string{"test-key"}, searchQuery["key"])
	assert.Equal(t, []string{"seed,v1,v2"}, videosQuery["id"])

	require.Len(t, tracks, 2, "seed and id-less results are dropped")
	assert.Equal(t, playlist.Track{
		ID:       "v1",
		Title:    "Rock & Roll",
		Author:   "Band",
		URL:      "https://www.youtube.com/watch?v=v1",
		Duration: 3*time.Minute + 30*time.Second,
	}, tracks[0])
	assert.Equal(t, "Don't Stop", tracks[1].Title)
	assert.Equal(t, time.Hour+2*time.Minute, tracks[1].Duration)
}

func TestYouTube_SearchKeepsResultsWhenDurationsFail(t *testing.T) {
	var gotQ string
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/videos" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		gotQ = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(searchBody))
	})

	tracks, err := yt.Search(context.Background(), "  daft punk  ", 5)
	require.NoError(t, err)
	assert.Equal(t, "daft punk", gotQ)
	require.Len(t, tracks, 3)
	assert.Zero(t, tracks[1].Duration)
}

func TestYouTube_EmptyQuery(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	tracks, err := yt.Search(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestYouTube_APIError(t *testing.T) {
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
	})

	_, err := yt.Related(context.Background(), playlist.Track{ID: "seed"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestYouTube_MissingAPIKey(t *testing.T) {
	yt := NewYouTube(YouTubeOptions{Logger: zerolog.Nop()})

	_, err := yt.Related(context.Background(), playlist.Track{ID: "seed"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestYouTube_Lookup(t *testing.T) {
	var gotIDs, gotPart string
	yt := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		gotIDs = r.URL.Query().Get("id")
		gotPart = r.URL.Query().Get("part")
		_, _ = w.Write([]byte(`{"items": [
			{"id": "v1", "snippet": {"title": "Song", "channelTitle": "Artist"}, "contentDetails": {"duration": "PT4M"}}
		]}`))
	})

	tracks, err := yt.Lookup(context.Background(), "v1", "", "v1", "missing")
	require.NoError(t, err)
	assert.Equal(t, "v1,missing", gotIDs)
	assert.Equal(t, "snippet,contentDetails", gotPart)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Artist - Song", tracks[0].DisplayName())
	assert.Equal(t, 4*time.Minute, tracks[0].Duration)
}

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"PT3M30S", 3*time.Minute + 30*time.Second},
		{"PT45S", 45 * time.Second},
		{"PT1H", time.Hour},
		{"P1DT1S", 24*time.Hour + time.Second},
		{"P0D", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseISO8601Duration(tt.in))
		})
	}
}
