package search

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the video id from a YouTube link. Plain text
// queries report false.
func ParseVideoID(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if !strings.Contains(q, "://") {
		if !strings.HasPrefix(q, "youtu") && !strings.HasPrefix(q, "www.youtu") && !strings.HasPrefix(q, "m.youtu") {
			return "", false
		}
		q = "https://" + q
	}
	u, err := url.Parse(q)
	if err != nil {
		return "", false
	}

	var id string
	switch strings.TrimPrefix(strings.TrimPrefix(u.Hostname(), "www."), "m.") {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/v/"):
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) >= 2 {
				id = parts[1]
			}
		}
	}
	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
