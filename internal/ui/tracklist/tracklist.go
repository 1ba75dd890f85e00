// Package tracklist is the scrollable list panel used for the queue and
// for search results.
package tracklist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/ui"
	"github.com/llehouerou/streamus/internal/ui/cursor"
)

// Row is one line of the list.
type Row struct {
	Track  playlist.Track
	Active bool // the selected queue item
	Played bool // in the recent history
}

// QueueRows builds rows for queue items. played reports history membership.
func QueueRows(items []*playlist.Item, played func(*playlist.Item) bool) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Track: it.Track, Active: it.Active(), Played: played != nil && played(it)}
	}
	return rows
}

// TrackRows builds rows for bare tracks.
func TrackRows(tracks []playlist.Track) []Row {
	rows := make([]Row, len(tracks))
	for i, t := range tracks {
		rows[i] = Row{Track: t}
	}
	return rows
}

// SelectMsg asks the owner to play or add the row at Index.
type SelectMsg struct {
	List  string
	Index int
}

// DeleteMsg asks the owner to remove the row at Index.
type DeleteMsg struct {
	List  string
	Index int
}

// MoveMsg asks the owner to move the row at From to To.
type MoveMsg struct {
	List     string
	From, To int
}

// Model is a titled list panel. Rows are owned by the caller and replaced
// with SetRows.
type Model struct {
	ui.Base
	name    string
	title   string
	empty   string
	rows    []Row
	cursor  cursor.Cursor
	reorder bool
}

// New creates a panel. name tags the messages it emits.
func New(name, title string) Model {
	return Model{
		name:   name,
		title:  title,
		empty:  "Empty",
		cursor: cursor.New(ui.ScrollMargin),
	}
}

// SetTitle changes the header text.
func (m *Model) SetTitle(title string) { m.title = title }

// SetEmptyText sets the placeholder shown when there are no rows.
func (m *Model) SetEmptyText(text string) { m.empty = text }

// SetReorderable enables delete and move keys.
func (m *Model) SetReorderable(on bool) { m.reorder = on }

// SetRows replaces the rows and keeps the cursor in range.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.cursor.ClampToBounds(len(rows))
	m.cursor.EnsureVisible(len(rows), m.listHeight())
}

func (m Model) Rows() []Row { return m.rows }
func (m Model) Len() int    { return len(m.rows) }

// Cursor returns the selected row index.
func (m Model) Cursor() int { return m.cursor.Pos() }

// JumpTo moves the cursor to index.
func (m *Model) JumpTo(index int) {
	m.cursor.Jump(index, len(m.rows), m.listHeight())
}

// Update handles keys while the panel is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	key := keyMsg.String()
	if m.cursor.HandleKey(key, len(m.rows), m.listHeight()) {
		return m, nil
	}
	if len(m.rows) == 0 {
		return m, nil
	}

	pos := m.cursor.Pos()
	switch key {
	case "enter":
		return m, m.emit(SelectMsg{List: m.name, Index: pos})
	}
	if !m.reorder {
		return m, nil
	}

	switch key {
	case "d", "delete":
		return m, m.emit(DeleteMsg{List: m.name, Index: pos})
	case "J", "shift+down":
		if pos < len(m.rows)-1 {
			m.cursor.Move(1, len(m.rows), m.listHeight())
			return m, m.emit(MoveMsg{List: m.name, From: pos, To: pos + 1})
		}
	case "K", "shift+up":
		if pos > 0 {
			m.cursor.Move(-1, len(m.rows), m.listHeight())
			return m, m.emit(MoveMsg{List: m.name, From: pos, To: pos - 1})
		}
	}
	return m, nil
}

func (m Model) emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}
