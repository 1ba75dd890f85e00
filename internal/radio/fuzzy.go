package radio

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/llehouerou/streamus/internal/lastfm"
	"github.com/llehouerou/streamus/internal/playlist"
)

// Video titles decorate the song name: "(Official Video)", "[HD]", "(Remastered)".
var bracketed = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]`)

// Separators used between artist and title in video titles.
var titleSeparators = []string{" - ", " \u2013 ", " \u2014 ", " | "}

// bestMatch picks the candidate that best matches want, or false when none
// scores at least threshold.
func bestMatch(want lastfm.SimilarTrack, candidates []playlist.Track, threshold float64) (playlist.Track, bool) {
	var best playlist.Track
	bestScore := 0.0
	for _, c := range candidates {
		score := matchScore(want, c)
		if score >= threshold && score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore > 0
}

// Title weight in matchScore; the artist makes up the rest.
const titleWeight = 0.7

// matchScore compares artist and title separately. A right artist with the
// wrong song must not pass the default threshold.
func matchScore(want lastfm.SimilarTrack, candidate playlist.Track) float64 {
	artist, title := splitArtistTitle(candidate)
	titleScore := similarity(normalizeString(want.Name), normalizeString(title))
	artistScore := similarity(normalizeString(want.Artist), normalizeString(artist))
	return titleWeight*titleScore + (1-titleWeight)*artistScore
}

// splitArtistTitle guesses the artist and song name of a video. Titles of
// the form "Artist - Song" win; otherwise the channel name is the artist.
func splitArtistTitle(t playlist.Track) (artist, title string) {
	for _, sep := range titleSeparators {
		if a, s, ok := strings.Cut(t.Title, sep); ok && strings.TrimSpace(a) != "" && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(a), strings.TrimSpace(s)
		}
	}
	return cleanChannel(t.Author), strings.TrimSpace(t.Title)
}

// cleanChannel strips the suffixes YouTube adds to artist channels.
func cleanChannel(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, " - Topic")
	name = strings.TrimSuffix(name, "VEVO")
	name = strings.TrimSuffix(name, " Official")
	return strings.TrimSpace(name)
}

// normalizeString normalizes a string for comparison.
// Converts to lowercase, drops bracketed decorations and punctuation, and
// collapses whitespace.
func normalizeString(s string) string {
	s = strings.ToLower(s)
	s = bracketed.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, " - remastered")
	s = strings.TrimSuffix(s, " - remaster")

	var result strings.Builder
	lastWasSpace := true // trims leading spaces

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
			lastWasSpace = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	return strings.TrimSpace(result.String())
}

// similarity returns 1 - normalized Levenshtein distance, in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	lenA := len([]rune(a))
	lenB := len([]rune(b))
	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	dist := levenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(max(lenA, lenB))
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) == 0 {
		return len(runesB)
	}
	if len(runesB) == 0 {
		return len(runesA)
	}

	// Two rows are enough.
	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(runesB)]
}
