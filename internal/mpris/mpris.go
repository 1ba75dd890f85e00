//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/player"
)

// Adapter serves Controls on the session bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter.
func New(c *Controls, log zerolog.Logger) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("streamus", &rootAdapter{}, &playerAdapter{c: c}),
		log:    log.With().Str("component", "mpris").Logger(),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "Streamus", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	c *Controls
}

func (p *playerAdapter) Next() error      { return p.c.Next() }
func (p *playerAdapter) Previous() error  { return p.c.Previous() }
func (p *playerAdapter) Pause() error     { return p.c.Pause() }
func (p *playerAdapter) PlayPause() error { return p.c.PlayPause() }
func (p *playerAdapter) Stop() error      { return p.c.Stop() }
func (p *playerAdapter) Play() error      { return p.c.Play() }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.c.Seek(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.c.SetPosition(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s, err := p.c.State()
	if err != nil {
		return types.PlaybackStatusStopped, err
	}
	return playbackStatus(s), nil
}

func playbackStatus(s player.State) types.PlaybackStatus {
	switch s {
	case player.Playing, player.Buffering:
		return types.PlaybackStatusPlaying
	case player.Paused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok, err := p.c.Current()
	if err != nil || !ok {
		return types.Metadata{}, err
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		ArtUrl:  track.ThumbnailURL(),
	}
	if track.Author != "" {
		meta.Artist = []string{track.Author}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error)  { return p.c.Volume() }
func (p *playerAdapter) SetVolume(v float64) error { return p.c.SetVolume(v) }

func (p *playerAdapter) Position() (int64, error) {
	pos, err := p.c.Position()
	return pos.Microseconds(), err
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return p.c.CanGoNext() }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return p.c.CanGoPrevious() }
func (p *playerAdapter) CanPlay() (bool, error)        { return p.c.CanPlay() }
func (p *playerAdapter) CanPause() (bool, error)       { return p.c.CanPlay() }
func (p *playerAdapter) CanSeek() (bool, error)        { return true, nil }
func (p *playerAdapter) CanControl() (bool, error)     { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	m, err := p.c.Modes()
	if err != nil {
		return types.LoopStatusNone, err
	}
	return loopStatus(m.Repeat), nil
}

func loopStatus(mode playback.RepeatMode) types.LoopStatus {
	switch mode {
	case playback.RepeatSong:
		return types.LoopStatusTrack
	case playback.RepeatAll:
		return types.LoopStatusPlaylist
	default:
		return types.LoopStatusNone
	}
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		return p.c.SetRepeat(playback.RepeatOff)
	case types.LoopStatusTrack:
		return p.c.SetRepeat(playback.RepeatSong)
	case types.LoopStatusPlaylist:
		return p.c.SetRepeat(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	m, err := p.c.Modes()
	return m.Shuffle, err
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	return p.c.SetShuffle(shuffle)
}

func formatTrackID(videoID string) string {
	h := fnv.New64a()
	h.Write([]byte(videoID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
