package widget

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/loop"
)

// Load policy defaults.
const (
	DefaultMaxLoadAttempts  = 10
	DefaultLoadAttemptDelay = 6 * time.Second

	// Attempts are shown to users, so they start at 1.
	initialLoadAttempt = 1
)

// ErrNotReady is returned by commands issued before the widget is ready.
var ErrNotReady = errors.New("widget not ready")

// Options configures an Adapter.
type Options struct {
	MaxLoadAttempts  int
	LoadAttemptDelay time.Duration
	Logger           zerolog.Logger
}

// Adapter drives a Widget from the owning thread. All methods must be called
// on the dispatcher the adapter was created with.
type Adapter struct {
	w        Widget
	d        loop.Dispatcher
	log      zerolog.Logger
	listener Listener

	maxAttempts  int
	attemptDelay time.Duration

	phase         Phase
	attempt       int
	attemptTimer  *time.Timer
	timerGen      uint64
	pauseOnBuffer bool
	state         RawState
}

// NewAdapter creates an adapter in the Unloaded phase. Nothing is loaded
// until Preload is called.
func NewAdapter(w Widget, d loop.Dispatcher, opts Options) *Adapter {
	if opts.MaxLoadAttempts <= 0 {
		opts.MaxLoadAttempts = DefaultMaxLoadAttempts
	}
	if opts.LoadAttemptDelay <= 0 {
		opts.LoadAttemptDelay = DefaultLoadAttemptDelay
	}
	return &Adapter{
		w:            w,
		d:            d,
		log:          opts.Logger.With().Str("component", "widget").Logger(),
		maxAttempts:  opts.MaxLoadAttempts,
		attemptDelay: opts.LoadAttemptDelay,
		attempt:      initialLoadAttempt,
		state:        RawUnstarted,
	}
}

// SetListener sets the receiver of translated events.
func (a *Adapter) SetListener(l Listener) { a.listener = l }

func (a *Adapter) Phase() Phase         { return a.phase }
func (a *Adapter) Ready() bool          { return a.phase == Ready }
func (a *Adapter) Loading() bool        { return a.phase == Loading }
func (a *Adapter) LoadAttempt() int     { return a.attempt }
func (a *Adapter) MaxLoadAttempts() int { return a.maxAttempts }

// State returns the last raw state the widget reported.
func (a *Adapter) State() RawState { return a.state }

// Preload announces that the widget is expected to load soon and starts
// loading it. It is a no-op while already loading.
func (a *Adapter) Preload() {
	if a.phase == Loading {
		return
	}
	if !a.setPhase(Loading) {
		return
	}
	a.Load()
}

// Load asks the widget to come up. Failures are retried on the next attempt.
func (a *Adapter) Load() {
	if err := a.w.Load(a); err != nil {
		a.log.Warn().Err(err).Int("attempt", a.attempt).Msg("widget load failed")
	}
}

// ForegroundStarted is a recovery hook: a user opening the UI is a good
// moment to retry a widget that is not ready.
func (a *Adapter) ForegroundStarted() {
	if a.phase != Ready {
		a.Preload()
	}
}

func (a *Adapter) setPhase(next Phase) bool {
	if a.phase == next {
		return true
	}
	if !a.phase.CanTransition(next) {
		a.log.Warn().Stringer("from", a.phase).Stringer("to", next).Msg("illegal widget transition")
		return false
	}

	wasReady, wasLoading := a.phase == Ready, a.phase == Loading
	a.phase = next
	isReady, isLoading := next == Ready, next == Loading

	// Ready is reported before loading so that listeners never observe
	// loading=false with ready=false on success.
	if wasReady != isReady && a.listener != nil {
		a.listener.ReadyChanged(isReady)
	}
	if wasLoading != isLoading {
		a.onLoadingChanged(isLoading)
	}
	return true
}

func (a *Adapter) onLoadingChanged(loading bool) {
	a.setAttempt(initialLoadAttempt)
	a.stopAttemptTimer()
	if loading {
		a.scheduleAttempt()
	}
	if a.listener != nil {
		a.listener.LoadingChanged(loading)
	}
}

func (a *Adapter) setAttempt(n int) {
	if a.attempt == n {
		return
	}
	a.attempt = n
	if a.listener != nil {
		a.listener.LoadAttemptChanged(n)
	}
}

func (a *Adapter) scheduleAttempt() {
	a.timerGen++
	gen := a.timerGen
	a.attemptTimer = time.AfterFunc(a.attemptDelay, func() {
		a.d.Post(func() { a.onAttemptDelayExceeded(gen) })
	})
}

func (a *Adapter) stopAttemptTimer() {
	a.timerGen++
	if a.attemptTimer != nil {
		a.attemptTimer.Stop()
		a.attemptTimer = nil
	}
}

func (a *Adapter) onAttemptDelayExceeded(gen uint64) {
	if gen != a.timerGen || a.phase != Loading {
		return
	}
	if a.attempt >= a.maxAttempts {
		a.log.Error().Int("attempts", a.attempt).Msg("widget failed to load")
		a.setPhase(Failed)
		return
	}
	a.setAttempt(a.attempt + 1)
	a.scheduleAttempt()
	a.Load()
}

// Close stops retrying and releases the widget.
func (a *Adapter) Close() error {
	a.stopAttemptTimer()
	return a.w.Close()
}

// Commands. They fail with ErrNotReady unless the widget is ready.

func (a *Adapter) Play() error {
	return a.do("play", a.w.Play)
}

func (a *Adapter) Pause() error {
	return a.do("pause", a.w.Pause)
}

func (a *Adapter) Stop() error {
	return a.do("stop", a.w.Stop)
}

// SeekTo always allows seeking ahead of the buffered range. Without it, a
// seek to the end while paused leaves the widget flipping ended -> playing.
func (a *Adapter) SeekTo(seconds float64) error {
	return a.do("seek", func() error { return a.w.SeekTo(seconds, true) })
}

func (a *Adapter) SetVolume(volume int) error {
	return a.do("set volume", func() error { return a.w.SetVolume(volume) })
}

func (a *Adapter) SetMuted(muted bool) error {
	if muted {
		return a.do("mute", a.w.Mute)
	}
	return a.do("unmute", a.w.Unmute)
}

// SetPlaybackQuality is a suggestion; the widget picks the closest quality
// it can deliver.
func (a *Adapter) SetPlaybackQuality(q Quality) error {
	return a.do("set quality", func() error { return a.w.SetPlaybackQuality(q) })
}

func (a *Adapter) LoadVideoByID(opts VideoOptions) error {
	return a.do("load video", func() error { return a.w.LoadVideoByID(opts) })
}

// CueVideoByID loads a video without starting playback. The widget's own
// cued state makes a later seek start playback, so the video is loaded
// normally and paused as soon as it buffers.
func (a *Adapter) CueVideoByID(opts VideoOptions) error {
	a.pauseOnBuffer = true
	if err := a.LoadVideoByID(opts); err != nil {
		a.pauseOnBuffer = false
		return err
	}
	// Pausing this early is timing dependent; pauseOnBuffer covers the rest.
	a.d.Post(func() { _ = a.Pause() })
	return nil
}

func (a *Adapter) do(op string, fn func() error) error {
	if a.phase != Ready {
		a.log.Debug().Str("op", op).Stringer("phase", a.phase).Msg("command ignored")
		return ErrNotReady
	}
	if err := fn(); err != nil {
		a.log.Warn().Err(err).Str("op", op).Msg("widget command failed")
		return err
	}
	return nil
}

// Events implementation. The widget calls these from its own goroutines;
// each is forwarded to the owning thread.

func (a *Adapter) WidgetReady() {
	a.d.Post(a.onWidgetReady)
}

func (a *Adapter) WidgetStateChanged(state RawState) {
	a.d.Post(func() { a.onWidgetStateChanged(state) })
}

func (a *Adapter) WidgetError(code ErrorCode) {
	a.d.Post(func() { a.onWidgetError(code) })
}

func (a *Adapter) WidgetTimeChanged(seconds float64) {
	a.d.Post(func() {
		if a.listener != nil {
			a.listener.TimeChanged(seconds)
		}
	})
}

func (a *Adapter) WidgetSeekingChanged(seeking bool) {
	a.d.Post(func() {
		if a.listener != nil {
			a.listener.SeekingChanged(seeking)
		}
	})
}

func (a *Adapter) onWidgetReady() {
	if a.phase == Ready {
		return
	}
	a.setPhase(Ready)
}

func (a *Adapter) onWidgetStateChanged(state RawState) {
	if a.pauseOnBuffer && state == RawBuffering {
		a.pauseOnBuffer = false
		_ = a.Pause()
	}
	a.state = state
	if a.listener != nil {
		a.listener.StateChanged(state)
	}
}

func (a *Adapter) onWidgetError(code ErrorCode) {
	if code == ErrReallyBad {
		a.log.Warn().Msg("widget broke, reloading")
		a.Preload()
		return
	}
	if a.listener != nil {
		a.listener.Error(code)
	}
}

var _ Events = (*Adapter)(nil)
