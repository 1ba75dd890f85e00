package lastfm

// SimilarTrack is a track Last.fm considers similar to a seed track.
type SimilarTrack struct {
	Artist string
	Name   string
	Match  float64 // 0.0-1.0 similarity score
	Rank   int     // 1-based position in the response
}

// Query returns a free-text search query for the track.
func (t SimilarTrack) Query() string {
	return t.Artist + " " + t.Name
}
