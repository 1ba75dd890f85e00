// Package icons maps the glyphs used by the interface to the configured
// icon style.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Shuffle    string
	Radio      string
	RepeatAll  string
	RepeatOne  string
	Volume     string
	VolumeMute string
	Search     string
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b",     // nf-fa-play
		Pause:      "\uf04c",     // nf-fa-pause
		Shuffle:    "\U000f049f", // nf-md-shuffle
		Radio:      "\U000f0439", // nf-md-radio
		RepeatAll:  "\U000f0456", // nf-md-repeat
		RepeatOne:  "\U000f0458", // nf-md-repeat_once
		Volume:     "\U000f057e", // nf-md-volume_high
		VolumeMute: "\U000f075f", // nf-md-volume_mute
		Search:     "\uf002",     // nf-fa-search
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Shuffle:    "🔀",
		Radio:      "📻",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Search:     "🔍",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Shuffle:    "[S]",
		Radio:      "[~]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Volume:     "vol",
		VolumeMute: "mut",
		Search:     "/",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons { return current }

func Play() string       { return current.Play }
func Pause() string      { return current.Pause }
func Shuffle() string    { return current.Shuffle }
func Radio() string      { return current.Radio }
func RepeatAll() string  { return current.RepeatAll }
func RepeatOne() string  { return current.RepeatOne }
func Volume() string     { return current.Volume }
func VolumeMute() string { return current.VolumeMute }
func Search() string     { return current.Search }
