package player

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/state"
	"github.com/llehouerou/streamus/internal/widget"
)

// Defaults for Options fields left zero.
const (
	DefaultVolume     = 50
	DefaultMaxVolume  = 100
	DefaultMaxLoadAge = 4 * time.Hour
)

// Widget is the part of widget.Adapter the controller drives.
type Widget interface {
	SetListener(l widget.Listener)
	Preload()
	Ready() bool
	Loading() bool
	LoadAttempt() int
	State() widget.RawState
	Play() error
	Pause() error
	Stop() error
	SeekTo(seconds float64) error
	SetVolume(volume int) error
	SetMuted(muted bool) error
	SetPlaybackQuality(q widget.Quality) error
	LoadVideoByID(opts widget.VideoOptions) error
	CueVideoByID(opts widget.VideoOptions) error
}

// Options configures a Controller.
type Options struct {
	Volume     *int
	MinVolume  int
	MaxVolume  int
	MaxLoadAge time.Duration
	Quality    Quality
	// Now is the clock used for expiry. Defaults to time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
}

// persisted is the whitelisted part of the controller that is saved.
type persisted struct {
	Volume int  `json:"volume"`
	Muted  bool `json:"muted"`
}

// videoMeta is per-video state discarded whenever another video loads.
type videoMeta struct {
	errored   bool
	lastError widget.ErrorCode
}

// Controller reconciles what the user wants (play, pause, seek, volume)
// with what the unreliable widget is actually doing.
//
// Controller is not safe for concurrent use; it lives on the owning thread.
type Controller struct {
	w     Widget
	store state.Store
	log   zerolog.Logger
	now   func() time.Time

	minVolume  int
	maxVolume  int
	maxLoadAge time.Duration
	quality    Quality

	ready         bool
	loading       bool
	loadAttempt   int
	state         State
	previousState State
	seeking       bool
	cueing        bool

	volume int
	muted  bool

	playOnActivate bool
	loaded         *playlist.Track
	songToActivate *playlist.Track
	currentTime    float64
	loadedAt       time.Time
	meta           videoMeta

	onStateChanged []func(prev, cur State)
	onError        []func(widget.ErrorCode)
	onChanged      []func()
}

// New creates a controller driving w and registers it as w's listener.
func New(w Widget, store state.Store, opts Options) *Controller {
	if opts.MaxVolume <= 0 {
		opts.MaxVolume = DefaultMaxVolume
	}
	if opts.MinVolume < 0 || opts.MinVolume >= opts.MaxVolume {
		opts.MinVolume = 0
	}
	if opts.MaxLoadAge <= 0 {
		opts.MaxLoadAge = DefaultMaxLoadAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	volume := DefaultVolume
	if opts.Volume != nil {
		volume = *opts.Volume
	}

	c := &Controller{
		w:          w,
		store:      store,
		log:        opts.Logger.With().Str("component", "player").Logger(),
		now:        opts.Now,
		minVolume:  opts.MinVolume,
		maxVolume:  opts.MaxVolume,
		maxLoadAge: opts.MaxLoadAge,
		quality:    opts.Quality,
		volume:     clamp(volume, opts.MinVolume, opts.MaxVolume),
		state:      Unstarted,
	}
	c.restore()

	// Reflect whatever the widget is already doing.
	c.ready = w.Ready()
	c.loading = w.Loading()
	c.loadAttempt = w.LoadAttempt()
	w.SetListener(c)
	return c
}

// OnStateChanged registers a callback for playback state changes.
func (c *Controller) OnStateChanged(fn func(prev, cur State)) {
	c.onStateChanged = append(c.onStateChanged, fn)
}

// OnError registers a callback for widget errors about the loaded video.
func (c *Controller) OnError(fn func(widget.ErrorCode)) {
	c.onError = append(c.onError, fn)
}

// OnChanged registers a callback for any observable change.
func (c *Controller) OnChanged(fn func()) {
	c.onChanged = append(c.onChanged, fn)
}

func (c *Controller) State() State         { return c.state }
func (c *Controller) PreviousState() State { return c.previousState }
func (c *Controller) Ready() bool          { return c.ready }
func (c *Controller) Loading() bool        { return c.loading }
func (c *Controller) LoadAttempt() int     { return c.loadAttempt }
func (c *Controller) Volume() int          { return c.volume }
func (c *Controller) Muted() bool          { return c.muted }
func (c *Controller) Quality() Quality     { return c.quality }
func (c *Controller) Seeking() bool        { return c.seeking }
func (c *Controller) Cueing() bool         { return c.cueing }
func (c *Controller) PlayOnActivate() bool { return c.playOnActivate }
func (c *Controller) LoadedAt() time.Time  { return c.loadedAt }
func (c *Controller) LastError() (widget.ErrorCode, bool) {
	return c.meta.lastError, c.meta.errored
}

// CurrentTime returns the playback position in seconds.
func (c *Controller) CurrentTime() float64 { return c.currentTime }

// LoadedTrack returns the track loaded in the widget, if any.
func (c *Controller) LoadedTrack() (playlist.Track, bool) {
	if c.loaded == nil {
		return playlist.Track{}, false
	}
	return *c.loaded, true
}

// SetPlayOnActivate sets whether the next activated track starts playing.
func (c *Controller) SetPlayOnActivate(play bool) {
	c.playOnActivate = play
}

// ActivateSong loads track into the widget, starting at startSeconds. If the
// widget is not ready, the request is kept and replayed once it is.
func (c *Controller) ActivateSong(track playlist.Track, startSeconds float64) {
	if !c.ready {
		t := track
		c.songToActivate = &t
		return
	}

	q, ok := widgetQuality(c.quality)
	if !ok {
		c.log.Error().Stringer("quality", c.quality).Msg("unmapped quality")
	}
	opts := widget.VideoOptions{
		ID:           track.ID,
		StartSeconds: startSeconds,
		Quality:      q,
	}

	c.meta = videoMeta{}

	if c.playOnActivate || c.IsPausable() {
		_ = c.w.LoadVideoByID(opts)
	} else {
		c.cueing = true
		_ = c.w.CueVideoByID(opts)
	}

	t := track
	c.loaded = &t
	// Position is known before the widget reports it.
	c.currentTime = startSeconds
	c.playOnActivate = false
	c.songToActivate = nil
	c.loadedAt = c.now()
	c.emitChanged()
}

// ToggleState pauses when playing. Otherwise it plays, reloading first when
// the loaded track has expired.
func (c *Controller) ToggleState() {
	if c.state.IsPlaying() {
		c.Pause()
		return
	}
	if c.IsExpired() {
		c.playOnActivate = true
		c.Refresh()
		return
	}
	c.Play()
}

// Play resumes playback, loading the widget first if needed.
func (c *Controller) Play() {
	if c.w.Ready() {
		_ = c.w.Play()
		return
	}
	c.playOnActivate = true
	c.w.Preload()
}

func (c *Controller) Pause() {
	_ = c.w.Pause()
}

// Stop unloads the current track.
func (c *Controller) Stop() {
	_ = c.w.Stop()
	c.loaded = nil
	c.currentTime = 0
	c.loadedAt = time.Time{}
	c.meta = videoMeta{}
	c.setState(Unstarted)
	c.emitChanged()
}

// SeekTo moves playback to seconds.
func (c *Controller) SeekTo(seconds float64) {
	if !c.ready {
		c.currentTime = seconds
		c.emitChanged()
		return
	}

	// Seeking to the very end, or from the cued state, makes the widget
	// start playing. Reload at the target position instead.
	if c.loaded != nil && (seconds == float64(c.loaded.DurationSeconds()) || c.w.State() == widget.RawCued) {
		c.ActivateSong(*c.loaded, seconds)
		return
	}

	c.currentTime = seconds
	if c.IsExpired() {
		c.Refresh()
	}
	_ = c.w.SeekTo(seconds)
	c.emitChanged()
}

// Refresh reloads the loaded track at the current position.
func (c *Controller) Refresh() {
	if c.loaded != nil {
		c.ActivateSong(*c.loaded, c.currentTime)
		c.loadedAt = c.now()
		return
	}
	c.loadedAt = time.Time{}
}

// IsExpired reports whether the loaded video is too old to resume. The
// platform's stream URLs stop working after a few hours. It is false while
// nothing is loaded.
func (c *Controller) IsExpired() bool {
	if c.loaded == nil || c.loadedAt.IsZero() {
		return false
	}
	return c.now().Sub(c.loadedAt) > c.maxLoadAge
}

// IsPausable reports whether the player looks like it is playing.
// Buffering only counts when it is a real playback buffer: not the initial
// buffer of a cue, and not a seek issued while paused.
func (c *Controller) IsPausable() bool {
	switch c.state {
	case Playing:
		return true
	case Buffering:
		wasPlaying := c.previousState.IsPlaying()
		if c.seeking && !wasPlaying {
			return false
		}
		return !c.cueing
	default:
		return false
	}
}

// SetQuality changes the preferred playback quality.
func (c *Controller) SetQuality(q Quality) {
	if c.quality == q {
		return
	}
	c.quality = q
	wq, ok := widgetQuality(q)
	if !ok {
		c.log.Error().Int("quality", int(q)).Msg("unmapped quality")
	}
	if c.ready {
		_ = c.w.SetPlaybackQuality(wq)
	}
	c.emitChanged()
}

// WatchURL returns a link to track on the platform, positioned at the
// current time when it is the loaded track, and pauses playback.
func (c *Controller) WatchURL(track playlist.Track) string {
	at := time.Duration(0)
	if c.loaded != nil && c.loaded.ID == track.ID {
		at = time.Duration(c.currentTime * float64(time.Second))
	}
	c.Pause()
	return track.WatchURL(at)
}

func (c *Controller) setState(s State) {
	prev := c.state
	c.previousState = prev
	if prev == s {
		return
	}
	c.state = s
	if prev == Buffering {
		c.cueing = false
	}
	for _, fn := range c.onStateChanged {
		fn(prev, s)
	}
}

func (c *Controller) emitChanged() {
	for _, fn := range c.onChanged {
		fn()
	}
}

// widget.Listener implementation.

func (c *Controller) ReadyChanged(ready bool) {
	c.ready = ready
	if ready {
		c.restore()
		// Push explicitly; the widget does not know the saved values.
		_ = c.w.SetVolume(c.volume)
		_ = c.w.SetMuted(c.muted)

		if c.songToActivate != nil {
			c.ActivateSong(*c.songToActivate, 0)
		} else {
			c.Refresh()
		}
	}
	c.emitChanged()
}

func (c *Controller) LoadingChanged(loading bool) {
	c.loading = loading
	// Recovering from a failure hours later must not resume playback.
	if !loading && !c.ready {
		if c.loaded == nil {
			c.setState(Unstarted)
		} else {
			c.setState(Paused)
		}
	}
	c.emitChanged()
}

func (c *Controller) LoadAttemptChanged(attempt int) {
	c.loadAttempt = attempt
	c.emitChanged()
}

func (c *Controller) StateChanged(raw widget.RawState) {
	s, ok := stateFromRaw(raw)
	if !ok && raw != widget.RawCued {
		c.log.Error().Stringer("state", raw).Msg("unexpected widget state")
	}
	c.setState(s)
	c.emitChanged()
}

func (c *Controller) Error(code widget.ErrorCode) {
	c.meta = videoMeta{errored: true, lastError: code}
	c.log.Warn().Stringer("code", code).Msg("widget error")
	for _, fn := range c.onError {
		fn(code)
	}
	c.emitChanged()
}

func (c *Controller) TimeChanged(seconds float64) {
	c.currentTime = seconds
	c.emitChanged()
}

func (c *Controller) SeekingChanged(seeking bool) {
	c.seeking = seeking
}

var (
	_ widget.Listener = (*Controller)(nil)
	_ Widget          = (*widget.Adapter)(nil)
)
