// Package search runs debounced YouTube searches for a query typed by the
// user.
package search

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/debounce"
	"github.com/llehouerou/streamus/internal/loop"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/radio"
)

// Defaults for Options fields left zero.
const (
	DefaultDebounce   = 350 * time.Millisecond
	DefaultClearAfter = 10 * time.Second
	DefaultTimeout    = 10 * time.Second
	DefaultLimit      = 50
)

// VideoLookup resolves video ids to tracks.
type VideoLookup interface {
	Lookup(ctx context.Context, ids ...string) ([]playlist.Track, error)
}

// Options configures a Search. Dispatcher and Searcher are required.
type Options struct {
	Dispatcher loop.Dispatcher
	Searcher   radio.Searcher
	// Lookup resolves queries that are YouTube links. Optional.
	Lookup VideoLookup

	Limit      int
	Debounce   time.Duration
	ClearAfter time.Duration
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Search holds the current query and its results. Requests start once the
// user stops typing; responses for an outdated query are discarded.
// All methods must be called on the dispatcher.
type Search struct {
	d        loop.Dispatcher
	searcher radio.Searcher
	lookup   VideoLookup
	limit    int
	timeout  time.Duration
	log      zerolog.Logger

	debounce   *debounce.Pending
	clearAfter time.Duration
	clearTimer *time.Timer
	clearGen   uint64

	query   string
	gen     uint64
	queued  bool
	pending int
	results []playlist.Track
	err     error

	onChanged []func()
	ctx       context.Context
	cancel    context.CancelFunc
	closed    bool
}

// New creates an empty search.
func New(opts Options) *Search {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.ClearAfter <= 0 {
		opts.ClearAfter = DefaultClearAfter
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Search{
		d:          opts.Dispatcher,
		searcher:   opts.Searcher,
		lookup:     opts.Lookup,
		limit:      opts.Limit,
		timeout:    opts.Timeout,
		log:        opts.Logger.With().Str("component", "search").Logger(),
		debounce:   debounce.New(opts.Debounce),
		clearAfter: opts.ClearAfter,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// OnChanged registers a callback for query, result and progress changes.
func (s *Search) OnChanged(fn func()) { s.onChanged = append(s.onChanged, fn) }

func (s *Search) Query() string { return s.query }

// HasQuery reports whether anything was typed, whitespace included.
func (s *Search) HasQuery() bool { return s.query != "" }

// Results returns the results for the current query.
func (s *Search) Results() []playlist.Track { return slices.Clone(s.results) }

// Err returns the error of the last request, if it failed.
func (s *Search) Err() error { return s.err }

// Searching reports whether a request is waiting to start or in flight.
func (s *Search) Searching() bool { return s.queued || s.pending > 0 }

// SetQuery replaces the query, clears the results and schedules a search.
func (s *Search) SetQuery(q string) {
	if s.closed || q == s.query {
		return
	}
	s.query = q
	s.results = nil
	s.err = nil
	s.gen++

	trimmed := s.trimmedQuery()
	if trimmed == "" {
		s.debounce.Stop()
		s.queued = false
		s.changed()
		return
	}

	s.queued = true
	gen := s.gen
	s.debounce.Trigger(func() {
		s.d.Post(func() { s.start(gen, trimmed) })
	})
	s.changed()
}

// Clear empties the query.
func (s *Search) Clear() { s.SetQuery("") }

// StartClearQueryTimer clears the query once the timer elapses, unless it
// is stopped first. Restarting replaces a running timer.
func (s *Search) StartClearQueryTimer() {
	s.StopClearQueryTimer()
	gen := s.clearGen
	s.clearTimer = time.AfterFunc(s.clearAfter, func() {
		s.d.Post(func() {
			if gen == s.clearGen {
				s.clearTimer = nil
				s.Clear()
			}
		})
	})
}

// StopClearQueryTimer cancels a pending query clear.
func (s *Search) StopClearQueryTimer() {
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
	s.clearGen++
}

// Close cancels in-flight requests and timers.
func (s *Search) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.debounce.Stop()
	s.StopClearQueryTimer()
	s.cancel()
}

func (s *Search) trimmedQuery() string { return strings.TrimSpace(s.query) }

func (s *Search) start(gen uint64, query string) {
	// A newer SetQuery has taken over the debounce.
	if s.closed || gen != s.gen {
		return
	}
	s.queued = false
	s.pending++
	s.changed()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	go func() {
		defer cancel()
		tracks, err := s.fetch(ctx, query)
		s.d.Post(func() { s.complete(query, tracks, err) })
	}()
}

func (s *Search) fetch(ctx context.Context, query string) ([]playlist.Track, error) {
	if id, ok := ParseVideoID(query); ok && s.lookup != nil {
		return s.lookup.Lookup(ctx, id)
	}
	return s.searcher.Search(ctx, query, s.limit)
}

func (s *Search) complete(query string, tracks []playlist.Track, err error) {
	if s.closed {
		return
	}
	s.pending--
	if query == s.trimmedQuery() {
		if err != nil {
			s.log.Warn().Err(err).Str("query", query).Msg("search failed")
			s.err = err
		} else {
			s.results = tracks
		}
	}
	s.changed()
}

func (s *Search) changed() {
	for _, fn := range s.onChanged {
		fn()
	}
}
