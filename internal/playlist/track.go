package playlist

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Track is a playable video on the streaming platform.
type Track struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Author   string        `json:"author"`
	URL      string        `json:"url,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DurationSeconds returns the track length in whole seconds.
func (t Track) DurationSeconds() int {
	if t.Duration < 0 {
		return 0
	}
	return int(t.Duration / time.Second)
}

// ThumbnailURL returns the default thumbnail for the track's video.
func (t Track) ThumbnailURL() string {
	if t.ID == "" {
		return ""
	}
	return "https://i.ytimg.com/vi/" + url.PathEscape(t.ID) + "/default.jpg"
}

// WatchURL returns a link to the video positioned at the given offset.
func (t Track) WatchURL(at time.Duration) string {
	u := t.URL
	if u == "" {
		u = "https://www.youtube.com/watch?v=" + url.QueryEscape(t.ID)
	}
	if s := int(at / time.Second); s > 0 {
		sep := "&"
		if !strings.Contains(u, "?") {
			sep = "?"
		}
		u += fmt.Sprintf("%st=%ds", sep, s)
	}
	return u
}

// IsZero reports whether the track has no id.
func (t Track) IsZero() bool {
	return t.ID == ""
}

// DisplayName returns "Author - Title", or just the title when the author is unknown.
func (t Track) DisplayName() string {
	if t.Author == "" {
		return t.Title
	}
	return t.Author + " - " + t.Title
}
