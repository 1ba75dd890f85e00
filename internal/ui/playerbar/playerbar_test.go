package playerbar

import (
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/widget"
)

type fakeSource struct {
	state    player.State
	time     float64
	volume   int
	muted    bool
	loadedAt time.Time
}

func (f fakeSource) State() player.State  { return f.state }
func (f fakeSource) CurrentTime() float64 { return f.time }
func (f fakeSource) Volume() int          { return f.volume }
func (f fakeSource) Muted() bool          { return f.muted }
func (f fakeSource) LoadedAt() time.Time  { return f.loadedAt }

func TestNewState(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	src := fakeSource{state: player.Playing, time: 12.5, volume: 70, loadedAt: now.Add(-time.Minute)}
	item := &playlist.Item{Track: playlist.Track{ID: "abc", Title: "Song", Duration: time.Minute}}

	s := NewState(src, item, playback.Modes{Shuffle: true}, now)

	assert.True(t, s.Loaded)
	assert.Equal(t, "Song", s.Track.Title)
	assert.Equal(t, 12500*time.Millisecond, s.Position)
	assert.Equal(t, 70, s.Volume)
	assert.True(t, s.Modes.Shuffle)

	empty := NewState(src, nil, playback.Modes{}, now)
	assert.False(t, empty.Loaded)
	assert.Zero(t, empty.Position)
}

func TestRender(t *testing.T) {
	icons.Init("none")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nothing queued", func(t *testing.T) {
		out := plain(Render(State{Volume: 50}, 60))

		assert.Contains(t, out, "Nothing queued")
		assert.Contains(t, out, "vol  50%")
		assert.Equal(t, Height, lipgloss.Height(out))
	})

	t.Run("playing track", func(t *testing.T) {
		out := plain(Render(State{
			Status:   player.Playing,
			Track:    playlist.Track{Title: "Song", Author: "Band", Duration: 3 * time.Minute},
			Loaded:   true,
			Position: 90 * time.Second,
			Volume:   100,
			Modes:    playback.Modes{Shuffle: true, Radio: true, Repeat: playback.RepeatSong},
			LoadedAt: now.Add(-2 * time.Minute),
			Now:      now,
		}, 100))

		assert.Contains(t, out, "Song")
		assert.Contains(t, out, "Band")
		assert.Contains(t, out, "[S] [~] [1]")
		assert.Contains(t, out, "1:30")
		assert.Contains(t, out, "3:00")
		assert.Contains(t, out, "loaded 2 minutes ago")
		assert.Equal(t, Height, lipgloss.Height(out))
		for _, line := range splitLines(out) {
			assert.Equal(t, 100, lipgloss.Width(line))
		}
	})

	t.Run("muted", func(t *testing.T) {
		out := plain(Render(State{Muted: true, Volume: 30}, 60))
		assert.Contains(t, out, "mut  30%")
	})
}

type fakeLoader struct {
	phase   widget.Phase
	attempt int
}

func (f fakeLoader) Phase() widget.Phase  { return f.phase }
func (f fakeLoader) LoadAttempt() int     { return f.attempt }
func (f fakeLoader) MaxLoadAttempts() int { return 10 }

func TestLoadStatusMessage(t *testing.T) {
	tests := []struct {
		name   string
		loader fakeLoader
		key    string
		want   string
	}{
		{"ready", fakeLoader{widget.Ready, 1}, "ctrl+r", ""},
		{"unloaded", fakeLoader{widget.Unloaded, 1}, "ctrl+r", ""},
		{"loading", fakeLoader{widget.Loading, 4}, "ctrl+r", "Loading (attempt 4/10)"},
		{"failed", fakeLoader{widget.Failed, 1}, "ctrl+r", "Failed to load, press ctrl+r to retry"},
		{"failed without key", fakeLoader{widget.Failed, 1}, "", "Failed to load"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoadStatusOf(tt.loader, tt.key).Message())
		})
	}
}

func TestRenderLoadReplacesProgress(t *testing.T) {
	icons.Init("none")
	s := State{
		Status:   player.Paused,
		Track:    playlist.Track{Title: "Song", Duration: 3 * time.Minute},
		Loaded:   true,
		Position: 90 * time.Second,
		Volume:   50,
		Load:     LoadStatus{Phase: widget.Loading, Attempt: 2, MaxAttempts: 10},
	}

	out := plain(Render(s, 80))
	assert.Contains(t, out, "Song")
	assert.Contains(t, out, "Loading (attempt 2/10)")
	assert.NotContains(t, out, "1:30")
	assert.Equal(t, Height, lipgloss.Height(out))

	s.Load = LoadStatus{Phase: widget.Failed, ReloadKey: "ctrl+r"}
	out = plain(Render(s, 80))
	assert.Contains(t, out, "Failed to load, press ctrl+r to retry")
	for _, line := range splitLines(out) {
		assert.Equal(t, 80, lipgloss.Width(line))
	}
}

func TestRenderProgressBar(t *testing.T) {
	t.Run("half elapsed", func(t *testing.T) {
		out := plain(RenderProgressBar(">", time.Minute, 2*time.Minute, 30))
		assert.Contains(t, out, "1:00")
		assert.Contains(t, out, "2:00")
		assert.Equal(t, 30, lipgloss.Width(out))
	})

	t.Run("too narrow", func(t *testing.T) {
		out := plain(RenderProgressBar(">", time.Minute, 2*time.Minute, 10))
		assert.Contains(t, out, "1:00 / 2:00")
	})

	t.Run("unknown duration", func(t *testing.T) {
		out := plain(RenderProgressBar(">", 5*time.Second, 0, 30))
		assert.Contains(t, out, "0:05")
		assert.NotContains(t, out, "━")
	})
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
