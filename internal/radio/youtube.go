package radio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/llehouerou/streamus/internal/playlist"
)

// DefaultBaseURL is the YouTube Data API v3 endpoint.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	defaultRelatedLimit = 10
	maxResults          = 50
	requestTimeout      = 10 * time.Second
)

// ErrMissingAPIKey is returned when no YouTube API key is configured.
var ErrMissingAPIKey = errors.New("youtube api key not configured")

// APIError is a non-200 response from the YouTube API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtube: status %d", e.StatusCode)
	}
	return fmt.Sprintf("youtube: status %d: %s", e.StatusCode, e.Message)
}

// YouTubeOptions configures a YouTube client.
type YouTubeOptions struct {
	APIKey       string
	BaseURL      string
	RelatedLimit int
	HTTPClient   *http.Client
	Logger       zerolog.Logger
}

// YouTube talks to the YouTube Data API. It provides related videos and
// free-text search.
type YouTube struct {
	apiKey  string
	baseURL string
	limit   int
	http    *http.Client
	log     zerolog.Logger
}

// NewYouTube creates a YouTube client.
func NewYouTube(opts YouTubeOptions) *YouTube {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = defaultRelatedLimit
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	return &YouTube{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		limit:   clampResults(opts.RelatedLimit),
		http:    opts.HTTPClient,
		log:     opts.Logger.With().Str("component", "youtube").Logger(),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
}

type videoItem struct {
	ID             string  `json:"id"`
	Snippet        snippet `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Related returns videos related to seed.
func (y *YouTube) Related(ctx context.Context, seed playlist.Track) ([]playlist.Track, error) {
	if seed.ID == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("relatedToVideoId", seed.ID)
	tracks, err := y.search(ctx, params, y.limit)
	if err != nil {
		return nil, fmt.Errorf("related to %s: %w", seed.ID, err)
	}
	return excludeSeed(tracks, seed.ID), nil
}

// Search returns videos matching query.
func (y *YouTube) Search(ctx context.Context, query string, limit int) ([]playlist.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("q", query)
	tracks, err := y.search(ctx, params, clampResults(limit))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return tracks, nil
}

// Lookup returns the videos with the given ids, in the order the API
// returns them. Unknown ids are skipped.
func (y *YouTube) Lookup(ctx context.Context, ids ...string) ([]playlist.Track, error) {
	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return nil, nil
	}
	var body videosResponse
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	if err := y.get(ctx, "videos", params, &body); err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	tracks := make([]playlist.Track, 0, len(body.Items))
	for _, it := range body.Items {
		tracks = append(tracks, playlist.Track{
			ID:       it.ID,
			Title:    html.UnescapeString(it.Snippet.Title),
			Author:   html.UnescapeString(it.Snippet.ChannelTitle),
			URL:      watchURL(it.ID),
			Duration: parseISO8601Duration(it.ContentDetails.Duration),
		})
	}
	return tracks, nil
}

func (y *YouTube) search(ctx context.Context, params url.Values, limit int) ([]playlist.Track, error) {
	params.Set("part", "snippet")
	// type must be video when relatedToVideoId is set.
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", strconv.Itoa(limit))

	var body searchResponse
	if err := y.get(ctx, "search", params, &body); err != nil {
		return nil, err
	}

	tracks := make([]playlist.Track, 0, len(body.Items))
	for _, it := range body.Items {
		id := it.ID.VideoID
		if id == "" {
			continue
		}
		tracks = append(tracks, playlist.Track{
			ID:     id,
			Title:  html.UnescapeString(it.Snippet.Title),
			Author: html.UnescapeString(it.Snippet.ChannelTitle),
			URL:    watchURL(id),
		})
	}
	if len(tracks) == 0 {
		return tracks, nil
	}

	durations, err := y.durations(ctx, lo.Map(tracks, func(t playlist.Track, _ int) string { return t.ID }))
	if err != nil {
		// Results stay usable without durations.
		y.log.Warn().Err(err).Msg("failed to fetch durations")
		return tracks, nil
	}
	for i := range tracks {
		tracks[i].Duration = durations[tracks[i].ID]
	}
	return tracks, nil
}

func (y *YouTube) durations(ctx context.Context, ids []string) (map[string]time.Duration, error) {
	var body videosResponse
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	if err := y.get(ctx, "videos", params, &body); err != nil {
		return nil, err
	}
	return lo.SliceToMap(body.Items, func(it videoItem) (string, time.Duration) {
		return it.ID, parseISO8601Duration(it.ContentDetails.Duration)
	}), nil
}

func (y *YouTube) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if y.apiKey == "" {
		return ErrMissingAPIKey
	}
	params.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := y.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body errorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error.Message
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func watchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}

func clampResults(n int) int {
	if n <= 0 {
		return defaultRelatedLimit
	}
	return min(n, maxResults)
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISO8601Duration parses the API's video durations (PT#H#M#S).
// Unparseable values yield 0.
func parseISO8601Duration(s string) time.Duration {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		d += time.Duration(n) * unit
	}
	return d
}
