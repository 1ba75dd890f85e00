// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/ui/confirm"
	"github.com/llehouerou/streamus/internal/ui/layout"
	"github.com/llehouerou/streamus/internal/ui/playerbar"
	"github.com/llehouerou/streamus/internal/ui/tracklist"
)

type clearQueue struct{}

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg()
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.FocusMsg:
		m.focus.set(true)
		if m.widget != nil {
			m.widget.ForegroundStarted()
		}
		return m, nil

	case tea.BlurMsg:
		m.focus.set(false)
		return m, nil

	case TickMsg:
		return m, TickCmd()

	case streamErrorMsg:
		m.setError(errmsg.FormatWith(msg.Operation, msg.TrackID, msg.Err))
		m.sync()
		return m, watchStream(m.sub)

	case trackChangedMsg:
		if !m.statusErr {
			m.status = ""
		}
		m.sync()
		if msg.Index >= 0 {
			m.queue.JumpTo(msg.Index)
		}
		return m, watchStream(m.sub)

	case streamUpdateMsg:
		m.sync()
		return m, watchStream(m.sub)

	case streamClosedMsg:
		return m, nil

	case tracklist.SelectMsg:
		m.handleSelect(msg)
		m.sync()
		return m, nil

	case tracklist.DeleteMsg:
		if it := m.stream.Queue().At(msg.Index); it != nil {
			m.stream.Remove(it)
		}
		m.sync()
		return m, nil

	case tracklist.MoveMsg:
		m.stream.Queue().Move(msg.From, msg.To)
		m.sync()
		return m, nil

	case confirm.Result:
		if _, ok := msg.Context.(clearQueue); ok && msg.Confirmed {
			m.stream.Clear()
			m.status = "Queue cleared"
			m.statusErr = false
		}
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleSelect(msg tracklist.SelectMsg) {
	switch msg.List {
	case listQueue:
		if it := m.stream.Queue().At(msg.Index); it != nil {
			m.stream.Play(it)
		}
	case listResults:
		rows := m.results.Rows()
		if msg.Index >= len(rows) {
			return
		}
		m.addAndPlay(rows[msg.Index].Track)
	}
}

// addAndPlay queues t and starts it. A track already queued is played in
// place.
func (m *Model) addAndPlay(t playlist.Track) {
	if existing := m.stream.Queue().ByTrackID(t.ID); existing != nil {
		m.stream.Play(existing)
		m.setInfo("Playing " + t.Title)
		return
	}
	if added := m.stream.AddTracks([]playlist.Track{t}, playback.AddOptions{PlayOnAdd: true}); len(added) > 0 {
		m.setInfo("Added " + t.Title)
	}
}

// sync copies the services' state into the panels.
func (m *Model) sync() {
	items := m.stream.Queue().Items()
	m.queue.SetRows(tracklist.QueueRows(items, (*playlist.Item).PlayedRecently))

	m.results.SetRows(tracklist.TrackRows(m.search.Results()))
	switch {
	case m.search.Err() != nil:
		m.results.SetEmptyText(errmsg.Format(errmsg.OpSearch, m.search.Err()))
	case m.search.Searching():
		m.results.SetEmptyText("Searching...")
	case m.search.HasQuery():
		m.results.SetEmptyText("No results")
	default:
		m.results.SetEmptyText("Type to search")
	}
}

func (m *Model) resize() {
	p := layout.Compute(m.width, m.height, layout.Opts{
		PlayerBarHeight: playerbar.Height,
		Searching:       m.searching,
	})
	m.queue.SetSize(p.QueueWidth, p.QueueHeight)
	m.results.SetSize(p.ResultsWidth, p.ResultsHeight)
	m.input.Width = max(m.width-4, 0)
	m.sync()
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *Model) setInfo(text string) {
	m.status = text
	m.statusErr = false
}
