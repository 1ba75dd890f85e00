// Package app is the terminal interface of streamus. It renders the queue,
// the player and search, and turns keys into stream operations.
package app

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/keymap"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/search"
	"github.com/llehouerou/streamus/internal/ui/confirm"
	"github.com/llehouerou/streamus/internal/ui/playerbar"
	"github.com/llehouerou/streamus/internal/ui/tracklist"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 5

	listQueue   = "queue"
	listResults = "results"
)

// Player is the part of the player controller the interface reads and
// adjusts directly. Transport goes through the stream.
type Player interface {
	playerbar.Source
	AdjustVolume(delta int)
	ToggleMuted()
}

// Widget is the load lifecycle of the player widget. It is retried when the
// terminal regains focus or on request, and its progress is shown in the
// player bar.
type Widget interface {
	playerbar.Loader
	ForegroundStarted()
	Preload()
}

// Focus records whether the terminal has focus. It is shared with the
// stream, which only notifies while the user is away.
type Focus struct {
	focused atomic.Bool
}

// NewFocus returns a Focus that starts focused.
func NewFocus() *Focus {
	f := &Focus{}
	f.focused.Store(true)
	return f
}

// Foreground reports whether the terminal has focus.
func (f *Focus) Foreground() bool { return f.focused.Load() }

func (f *Focus) set(focused bool) { f.focused.Store(focused) }

// StartupError is a failure from before the interface started that did not
// stop it from starting.
type StartupError struct {
	Op  errmsg.Op
	Err error
}

// Deps are the services the interface drives. Stream, Player and Search
// are required.
type Deps struct {
	Stream *playback.Stream
	Player Player
	Search *search.Search
	// Widget is optional. Without it no load progress is shown.
	Widget Widget
	Focus  *Focus
	// StartupErrors are shown in the status line until the first key.
	StartupErrors []StartupError
	Now           func() time.Time
	Logger        zerolog.Logger
}

// Model is the root application model.
type Model struct {
	stream *playback.Stream
	player Player
	search *search.Search
	widget Widget
	focus  *Focus
	sub    *playback.Subscription
	keys   *keymap.Resolver
	now    func() time.Time
	log    zerolog.Logger

	queue     tracklist.Model
	results   tracklist.Model
	input     textinput.Model
	confirm   confirm.Model
	searching bool
	showHelp  bool
	status    string
	statusErr bool

	width, height int
}

// New creates the model and subscribes to the stream.
func New(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Focus == nil {
		deps.Focus = NewFocus()
	}

	input := textinput.New()
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Prompt = icons.Search() + " "
	input.Placeholder = "Search YouTube or paste a link"
	input.CharLimit = 200

	queue := tracklist.New(listQueue, "Queue")
	queue.SetReorderable(true)
	queue.SetEmptyText("Queue is empty. Press / to search.")
	queue.SetFocused(true)

	results := tracklist.New(listResults, "Results")
	results.SetEmptyText("Type to search")

	m := Model{
		stream:  deps.Stream,
		player:  deps.Player,
		search:  deps.Search,
		widget:  deps.Widget,
		focus:   deps.Focus,
		sub:     deps.Stream.Subscribe(),
		keys:    keymap.NewResolver(keymap.All),
		now:     deps.Now,
		log:     deps.Logger.With().Str("component", "app").Logger(),
		queue:   queue,
		results: results,
		input:   input,
	}
	m.sync()
	if len(deps.StartupErrors) > 0 {
		msgs := make([]string, 0, len(deps.StartupErrors))
		for _, e := range deps.StartupErrors {
			msgs = append(msgs, errmsg.Format(e.Op, e.Err))
		}
		m.setError(strings.Join(msgs, " · "))
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(watchStream(m.sub), TickCmd())
}
