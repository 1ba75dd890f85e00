package playback

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatSong
	RepeatAll
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatSong:
		return "Song"
	case RepeatAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Next returns the mode after m in the Off, Song, All cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatSong
	case RepeatSong:
		return RepeatAll
	default:
		return RepeatOff
	}
}

// Modes are the navigation toggles. They are independent of each other;
// their combination decides what plays next.
type Modes struct {
	Shuffle bool       `json:"shuffle"`
	Radio   bool       `json:"radio"`
	Repeat  RepeatMode `json:"repeat"`
}

func (m Modes) normalized() Modes {
	if m.Repeat < RepeatOff || m.Repeat > RepeatAll {
		m.Repeat = RepeatOff
	}
	return m
}
