// Package mpvwidget plays tracks through libmpv, which resolves streaming
// URLs with yt-dlp.
package mpvwidget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/wildeyedskies/go-mpv/mpv"

	"github.com/llehouerou/streamus/internal/widget"
)

const pollInterval = 250 * time.Millisecond

var errClosed = errors.New("mpv widget closed")

// Widget implements widget.Widget on top of an mpv instance.
type Widget struct {
	log zerolog.Logger

	mu     sync.Mutex
	m      *mpv.Mpv
	events widget.Events
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup

	tracker *widget.Tracker

	// END_FILE events caused by our own replace/stop commands.
	skipEnds atomic.Int32
	loaded   atomic.Bool
}

// New creates an unloaded widget. libmpv is initialized on the first Load.
func New(log zerolog.Logger) *Widget {
	return &Widget{
		log:     log.With().Str("component", "mpv").Logger(),
		tracker: widget.NewTracker(),
	}
}

func (w *Widget) Load(events widget.Events) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errClosed
	}
	w.events = events
	if w.m != nil {
		events.WidgetReady()
		return nil
	}

	m := mpv.Create()
	for name, value := range map[string]string{
		"video":         "no",
		"audio-display": "no",
		"ytdl":          "yes",
		"idle":          "yes",
	} {
		if err := m.SetOptionString(name, value); err != nil {
			m.TerminateDestroy()
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := m.Initialize(); err != nil {
		m.TerminateDestroy()
		return fmt.Errorf("initialize mpv: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.m = m
	w.cancel = cancel
	w.wg.Add(2)
	go w.listen(ctx, m)
	go w.poll(ctx, m)

	events.WidgetReady()
	return nil
}

func (w *Widget) instance() (*mpv.Mpv, widget.Events, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.m == nil {
		return nil, nil, widget.ErrNotReady
	}
	return w.m, w.events, nil
}

func (w *Widget) command(args ...string) error {
	m, _, err := w.instance()
	if err != nil {
		return err
	}
	return m.Command(args)
}

func (w *Widget) LoadVideoByID(opts widget.VideoOptions) error {
	m, events, err := w.instance()
	if err != nil {
		return err
	}
	if err := m.SetOptionString("ytdl-format", ytdlFormat(opts.Quality)); err != nil {
		return err
	}
	if err := m.SetOptionString("start", strconv.FormatFloat(opts.StartSeconds, 'f', 3, 64)); err != nil {
		return err
	}
	if w.loaded.Swap(true) {
		w.skipEnds.Add(1)
	}
	url := "https://www.youtube.com/watch?v=" + opts.ID
	if err := m.Command([]string{"loadfile", url, "replace"}); err != nil {
		events.WidgetError(widget.ErrInvalidParameter)
		return err
	}
	w.tracker.Set(events, widget.RawBuffering)
	return nil
}

func (w *Widget) Play() error  { return w.command("set", "pause", "no") }
func (w *Widget) Pause() error { return w.command("set", "pause", "yes") }

func (w *Widget) Stop() error {
	if w.loaded.Swap(false) {
		w.skipEnds.Add(1)
	}
	return w.command("stop")
}

func (w *Widget) SeekTo(seconds float64, _ bool) error {
	// mpv always seeks past the buffered range.
	return w.command("seek", strconv.FormatFloat(seconds, 'f', 3, 64), "absolute")
}

func (w *Widget) SetVolume(volume int) error {
	return w.command("set", "volume", strconv.Itoa(volume))
}

func (w *Widget) Mute() error   { return w.command("set", "mute", "yes") }
func (w *Widget) Unmute() error { return w.command("set", "mute", "no") }

func (w *Widget) SetPlaybackQuality(q widget.Quality) error {
	m, _, err := w.instance()
	if err != nil {
		return err
	}
	return m.SetOptionString("ytdl-format", ytdlFormat(q))
}

// Close stops the event and poll goroutines, then destroys the mpv handle
// they were using.
func (w *Widget) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	m := w.m
	w.m = nil
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	if m == nil {
		return nil
	}
	// Break WaitEvent so listen sees the cancellation.
	m.Wakeup()
	w.wg.Wait()
	_ = m.Command([]string{"quit"})
	m.TerminateDestroy()
	return nil
}

// listen forwards end-of-file events that were not caused by our commands.
func (w *Widget) listen(ctx context.Context, m *mpv.Mpv) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		e := m.WaitEvent(1)
		if e == nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		switch e.Event_Id {
		case mpv.EVENT_END_FILE:
			if w.skipEnds.Load() > 0 {
				w.skipEnds.Add(-1)
				continue
			}
			w.loaded.Store(false)
			if _, events, err := w.instance(); err == nil {
				w.tracker.Set(events, widget.RawEnded)
			}
		case mpv.EVENT_SHUTDOWN:
			if _, events, err := w.instance(); err == nil {
				events.WidgetError(widget.ErrReallyBad)
			}
			return
		}
	}
}

// poll derives the widget state from mpv properties.
func (w *Widget) poll(ctx context.Context, m *mpv.Mpv) {
	defer w.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		_, events, err := w.instance()
		if err != nil {
			return
		}
		if !w.loaded.Load() {
			continue
		}
		w.tracker.Observe(events, sample(m))
	}
}

func sample(m *mpv.Mpv) widget.Sample {
	s := widget.Sample{
		Paused:         flag(m, "pause"),
		PausedForCache: flag(m, "paused-for-cache"),
		Seeking:        flag(m, "seeking"),
	}
	if pos, err := m.GetProperty("time-pos", mpv.FORMAT_DOUBLE); err == nil {
		s.Position, s.HasPosition = pos.(float64)
	}
	return s
}

func flag(m *mpv.Mpv, name string) bool {
	v, err := m.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func ytdlFormat(q widget.Quality) string {
	switch q {
	case widget.QualityHighres:
		return "bestaudio/best"
	case widget.QualitySmall:
		return "worstaudio/worst"
	default:
		return "bestaudio[abr<=160]/bestaudio/best"
	}
}

var _ widget.Widget = (*Widget)(nil)
