// Package playback sequences the stream: it decides what plays next and
// previous, keeps the play history and reacts to the player.
package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/debounce"
	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/loop"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/radio"
	"github.com/llehouerou/streamus/internal/state"
	"github.com/llehouerou/streamus/internal/widget"
)

// Defaults for Config fields left zero.
const (
	DefaultRestartThreshold = 3 * time.Second
	DefaultRelatedTimeout   = 10 * time.Second

	buttonThrottle = 100 * time.Millisecond
)

// Player is the part of the player controller the stream drives.
type Player interface {
	ActivateSong(track playlist.Track, startSeconds float64)
	ToggleState()
	Play()
	Pause()
	Stop()
	SeekTo(seconds float64)
	SetPlayOnActivate(play bool)
	State() player.State
	CurrentTime() float64
	LoadedTrack() (playlist.Track, bool)
	OnStateChanged(fn func(prev, cur player.State))
	OnError(fn func(widget.ErrorCode))
}

// NowPlayingNotifier shows the "now playing" notification.
type NowPlayingNotifier interface {
	ShowNowPlaying(title, thumbnailURL string)
}

// Config wires a Stream. Dispatcher, Queue and Player are required.
type Config struct {
	Dispatcher loop.Dispatcher
	Queue      *playlist.Queue
	Player     Player

	Related    radio.Provider
	Store      state.Store
	QueueStore state.QueueStore
	Notifier   NowPlayingNotifier
	// Foreground reports whether a user interface is visible. Now playing
	// notifications are only shown when it is not.
	Foreground func() bool

	HistorySize      int
	RelatedTimeout   time.Duration
	RestartThreshold time.Duration

	// Intn picks random items. Defaults to math/rand/v2.
	Intn   func(int) int
	Now    func() time.Time
	Logger zerolog.Logger
}

type streamRecord struct {
	History []string `json:"history"`
}

// Stream owns the queue, the history and the modes, and drives the player.
// All methods must be called on the dispatcher.
type Stream struct {
	d          loop.Dispatcher
	queue      *playlist.Queue
	player     Player
	history    *playlist.History
	related    radio.Provider
	store      state.Store
	queueStore state.QueueStore
	notifier   NowPlayingNotifier
	foreground func() bool
	intn       func(int) int
	log        zerolog.Logger

	relatedTimeout   time.Duration
	restartThreshold float64
	toggleThrottle   *debounce.Throttle
	previousThrottle *debounce.Throttle

	modes   Modes
	current *playlist.Item

	ctx    context.Context
	cancel context.CancelFunc
	subs   []*Subscription
	closed bool
}

// New creates a stream and subscribes it to the queue and the player.
// Call Load to restore persisted state.
func New(cfg Config) *Stream {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = playlist.DefaultHistorySize
	}
	if cfg.RelatedTimeout <= 0 {
		cfg.RelatedTimeout = DefaultRelatedTimeout
	}
	if cfg.RestartThreshold <= 0 {
		cfg.RestartThreshold = DefaultRestartThreshold
	}
	if cfg.Intn == nil {
		cfg.Intn = defaultIntn
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Stream{
		d:                cfg.Dispatcher,
		queue:            cfg.Queue,
		player:           cfg.Player,
		history:          playlist.NewHistory(cfg.HistorySize),
		related:          cfg.Related,
		store:            cfg.Store,
		queueStore:       cfg.QueueStore,
		notifier:         cfg.Notifier,
		foreground:       cfg.Foreground,
		intn:             cfg.Intn,
		log:              cfg.Logger.With().Str("component", "stream").Logger(),
		relatedTimeout:   cfg.RelatedTimeout,
		restartThreshold: cfg.RestartThreshold.Seconds(),
		toggleThrottle:   debounce.NewThrottle(buttonThrottle, cfg.Now),
		previousThrottle: debounce.NewThrottle(buttonThrottle, cfg.Now),
		ctx:              ctx,
		cancel:           cancel,
	}

	s.queue.OnAdded(s.onItemsAdded)
	s.queue.OnRemoved(s.onItemRemoved)
	s.queue.OnReset(s.onQueueReset)
	s.queue.OnActivated(s.onItemActivated)
	s.queue.OnChanged(s.onQueueChanged)
	s.player.OnStateChanged(s.onPlayerStateChanged)
	s.player.OnError(s.onPlayerError)
	return s
}

// Load restores the modes, the queue and the history, and loads the
// active item into the player without starting it.
func (s *Stream) Load() error {
	var errs []error

	if s.store != nil {
		var m Modes
		ok, err := s.store.Load(state.KeyModes, &m)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("load modes: %w", err))
		case ok:
			s.modes = m.normalized()
		}
	}

	if s.queueStore != nil {
		snaps, err := s.queueStore.GetQueue()
		if err != nil {
			errs = append(errs, fmt.Errorf("load queue: %w", err))
		} else {
			s.queue.Restore(snaps)
		}
	}

	if s.store != nil {
		var rec streamRecord
		ok, err := s.store.Load(state.KeyStream, &rec)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("load history: %w", err))
		case ok:
			s.history.Restore(rec.History)
			s.history.Retain(func(id string) bool { return s.queue.Get(id) != nil })
		}
	}

	if active := s.queue.ActiveItem(); active != nil {
		s.current = active
		s.player.ActivateSong(active.Track, 0)
	}
	for _, it := range s.queue.Items() {
		if !it.HasRelatedTracks() {
			s.fetchRelated(it)
		}
	}
	s.broadcastQueue()
	s.broadcastModes()
	return errors.Join(errs...)
}

// Queue returns the stream's items.
func (s *Stream) Queue() *playlist.Queue { return s.queue }

// History returns the previously active item ids, most recent first.
func (s *Stream) History() []string { return s.history.IDs() }

// Modes returns the current navigation toggles.
func (s *Stream) Modes() Modes { return s.modes }

// ActiveItem returns the active item, or nil.
func (s *Stream) ActiveItem() *playlist.Item { return s.queue.ActiveItem() }

// Subscribe creates a new event subscription.
func (s *Stream) Subscribe() *Subscription {
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close cancels in-flight fetches and closes all subscriptions.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	return nil
}

// Queue reactions.

func (s *Stream) onItemActivated(item *playlist.Item) {
	s.player.ActivateSong(item.Track, 0)

	var prev *playlist.Track
	if s.current != nil {
		t := s.current.Track
		prev = &t
	}
	cur := item.Track
	s.current = item
	s.broadcast(func(sub *Subscription) {
		sub.sendTrack(TrackChange{Previous: prev, Current: &cur, ItemID: item.ID, Index: s.queue.IndexOf(item)})
	})
}

func (s *Stream) onItemRemoved(r playlist.Removal) {
	if s.history.Prune(r.Item.ID) {
		s.saveHistory()
	}
	if s.current == r.Item {
		s.current = nil
	}
	if s.queue.IsEmpty() {
		s.stopPlayer()
		return
	}
	if r.WasActive {
		s.activateNext(r.Index)
	}
}

func (s *Stream) onQueueReset() {
	s.history.Clear()
	s.saveHistory()
	if s.queue.IsEmpty() {
		s.stopPlayer()
	}
}

func (s *Stream) onItemsAdded(items []*playlist.Item) {
	for _, it := range items {
		if !it.HasRelatedTracks() {
			s.fetchRelated(it)
		}
	}
}

func (s *Stream) onQueueChanged() {
	if s.queueStore != nil {
		s.queueStore.SaveQueue(s.queue.Snapshot())
	}
	s.broadcastQueue()
}

func (s *Stream) stopPlayer() {
	s.player.Stop()
	s.current = nil
}

// Player reactions.

func (s *Stream) onPlayerStateChanged(prev, cur player.State) {
	s.broadcast(func(sub *Subscription) { sub.sendState(StateChange{Previous: prev, Current: cur}) })

	switch cur {
	case player.Ended:
		// The widget reports ended after a seek to the end while paused.
		if !prev.IsPlaying() {
			s.log.Debug().Stringer("previous", prev).Msg("ignoring ended without playback")
			return
		}
		s.skip()
	case player.Playing:
		s.showNowPlaying()
	}
}

func (s *Stream) onPlayerError(code widget.ErrorCode) {
	if s.queue.IsEmpty() {
		s.log.Error().Stringer("code", code).Msg("player error while the stream is empty")
		return
	}

	var trackID string
	if active := s.queue.ActiveItem(); active != nil {
		trackID = active.Track.ID
	}
	s.log.Warn().Stringer("code", code).Str("track", trackID).Msg("skipping unplayable track")
	s.broadcast(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: errmsg.OpVideoPlay, TrackID: trackID, Err: code})
	})
	s.skip()
}

// skip advances after the current track ended or failed, keeping playback
// going.
func (s *Stream) skip() {
	if s.queue.IsEmpty() {
		return
	}
	if s.queue.ActiveItem() == nil {
		s.log.Warn().Msg("cannot advance without an active item")
		return
	}
	s.player.SetPlayOnActivate(true)
	if s.activateNext(-1) == nil {
		s.player.SetPlayOnActivate(false)
	}
}

func (s *Stream) showNowPlaying() {
	if s.notifier == nil {
		return
	}
	if s.foreground != nil && s.foreground() {
		return
	}
	active := s.queue.ActiveItem()
	if active == nil {
		return
	}
	s.notifier.ShowNowPlaying(active.Title, active.Track.ThumbnailURL())
}

// Persistence.

func (s *Stream) saveHistory() {
	if s.store != nil {
		s.store.Save(state.KeyStream, streamRecord{History: s.history.IDs()})
	}
}

func (s *Stream) saveModes() {
	if s.store != nil {
		s.store.Save(state.KeyModes, s.modes)
	}
	s.broadcastModes()
}

// Broadcasting.

func (s *Stream) broadcast(send func(*Subscription)) {
	for _, sub := range s.subs {
		send(sub)
	}
}

func (s *Stream) broadcastQueue() {
	if len(s.subs) == 0 {
		return
	}
	items := s.queue.Items()
	tracks := make([]playlist.Track, len(items))
	for i, it := range items {
		tracks[i] = it.Track
	}
	e := QueueChange{Tracks: tracks, Index: s.queue.ActiveIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *Stream) broadcastModes() {
	e := ModeChange{Modes: s.modes}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}
