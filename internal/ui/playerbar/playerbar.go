// Package playerbar renders the two-line now-playing bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/ui/render"
	"github.com/llehouerou/streamus/internal/ui/styles"
	"github.com/llehouerou/streamus/internal/widget"
)

// Height is the bar height including its border.
const Height = 4

// Source is the player surface the bar reads.
type Source interface {
	State() player.State
	CurrentTime() float64
	Volume() int
	Muted() bool
	LoadedAt() time.Time
}

// Loader reports the widget's load lifecycle.
type Loader interface {
	Phase() widget.Phase
	LoadAttempt() int
	MaxLoadAttempts() int
}

// LoadStatus is a snapshot of a Loader.
type LoadStatus struct {
	Phase       widget.Phase
	Attempt     int
	MaxAttempts int
	// ReloadKey is shown in the failure message.
	ReloadKey string
}

// LoadStatusOf snapshots l.
func LoadStatusOf(l Loader, reloadKey string) LoadStatus {
	return LoadStatus{
		Phase:       l.Phase(),
		Attempt:     l.LoadAttempt(),
		MaxAttempts: l.MaxLoadAttempts(),
		ReloadKey:   reloadKey,
	}
}

// Message describes a widget that is not ready, or returns "" when there
// is nothing to say.
func (l LoadStatus) Message() string {
	switch l.Phase {
	case widget.Loading:
		return fmt.Sprintf("Loading (attempt %d/%d)", l.Attempt, l.MaxAttempts)
	case widget.Failed:
		if l.ReloadKey == "" {
			return "Failed to load"
		}
		return "Failed to load, press " + l.ReloadKey + " to retry"
	default:
		return ""
	}
}

// State holds everything needed to render the player bar.
type State struct {
	Status   player.State
	Track    playlist.Track
	Loaded   bool
	Position time.Duration
	Volume   int
	Muted    bool
	Modes    playback.Modes
	LoadedAt time.Time
	Now      time.Time
	Load     LoadStatus
}

// NewState snapshots p. item is the active queue item, nil when none.
func NewState(p Source, item *playlist.Item, modes playback.Modes, now time.Time) State {
	s := State{
		Status:   p.State(),
		Volume:   p.Volume(),
		Muted:    p.Muted(),
		Modes:    modes,
		LoadedAt: p.LoadedAt(),
		Now:      now,
	}
	if item != nil {
		s.Track = item.Track
		s.Loaded = true
		s.Position = time.Duration(p.CurrentTime() * float64(time.Second))
	}
	return s
}

// Render returns the bar at the given outer width.
func Render(s State, width int) string {
	inner := max(width-4, 0)

	var top, bottom string
	if !s.Loaded {
		top = render.Row(styles.T().S().Muted.Render("Nothing queued"), renderRight(s), inner)
		bottom = render.Pad("", inner)
	} else {
		right := renderRight(s)
		titleWidth := max(inner-lipgloss.Width(right)-1, 0)
		top = render.Row(renderTitle(s.Track, titleWidth), right, inner)
		bottom = renderProgress(s, inner)
	}
	// The load state takes the progress line while the widget is not ready.
	if msg := s.Load.Message(); msg != "" {
		bottom = renderLoad(s.Load, msg, inner)
	}

	return styles.PanelStyle(false).
		Padding(0, 1).
		Width(width - 2).
		Render(top + "\n" + bottom)
}

func renderTitle(t playlist.Track, width int) string {
	title := styles.T().S().Title.Render(render.TruncateEllipsis(t.Title, width))
	used := lipgloss.Width(title)
	if t.Author == "" || used+3 >= width {
		return title
	}
	author := render.TruncateEllipsis(t.Author, width-used-3)
	return title + styles.T().S().Muted.Render(" · "+author)
}

// renderRight lists the enabled modes and the volume.
func renderRight(s State) string {
	var parts []string
	mode := styles.T().S().Mode
	if s.Modes.Shuffle {
		parts = append(parts, mode.Render(icons.Shuffle()))
	}
	if s.Modes.Radio {
		parts = append(parts, mode.Render(icons.Radio()))
	}
	switch s.Modes.Repeat {
	case playback.RepeatAll:
		parts = append(parts, mode.Render(icons.RepeatAll()))
	case playback.RepeatSong:
		parts = append(parts, mode.Render(icons.RepeatOne()))
	}
	parts = append(parts, RenderVolume(s.Volume, s.Muted))
	return strings.Join(parts, " ")
}

func renderProgress(s State, width int) string {
	status := icons.Pause()
	if s.Status.IsPlaying() {
		status = icons.Play()
	}

	var loaded string
	if !s.LoadedAt.IsZero() {
		loaded = styles.T().S().Subtle.Render("loaded " + humanize.RelTime(s.LoadedAt, s.Now, "ago", "from now"))
	}

	barWidth := max(width-lipgloss.Width(loaded)-1, 0)
	bar := RenderProgressBar(status, s.Position, s.Track.Duration, barWidth)
	if loaded == "" {
		return bar
	}
	return render.Row(bar, loaded, width)
}

func renderLoad(l LoadStatus, msg string, width int) string {
	style := styles.T().S().Muted
	if l.Phase == widget.Failed {
		style = styles.T().S().Error
	}
	return style.Render(render.TruncateAndPad(msg, width))
}
