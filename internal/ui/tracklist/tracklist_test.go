package tracklist

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/playlist"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansiRE.ReplaceAllString(s, "") }

func rows(titles ...string) []Row {
	out := make([]Row, len(titles))
	for i, title := range titles {
		out[i] = Row{Track: playlist.Track{ID: title, Title: title, Author: "Author " + title, Duration: 3 * time.Minute}}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func focused(r []Row) Model {
	m := New("queue", "Queue")
	m.SetSize(60, 10)
	m.SetFocused(true)
	m.SetRows(r)
	return m
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestViewEmpty(t *testing.T) {
	m := New("queue", "Queue")
	m.SetSize(60, 10)
	m.SetEmptyText("Press / to search")

	out := plain(m.View())

	assert.Contains(t, out, "Queue (0)")
	assert.Contains(t, out, "Press / to search")
	assert.Equal(t, 10, lipgloss.Height(out))
}

func TestViewRows(t *testing.T) {
	icons.Init("none")
	r := rows("One", "Two", "Three")
	r[1].Active = true

	m := New("queue", "Queue")
	m.SetSize(60, 10)
	m.SetRows(r)
	out := plain(m.View())

	assert.Contains(t, out, "Queue (3)")
	assert.Contains(t, out, "Author One")
	assert.Contains(t, out, "> Two")
	assert.Contains(t, out, "3:00")
	assert.Equal(t, 10, lipgloss.Height(out))
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestViewFocusedHeaderShowsCursor(t *testing.T) {
	m := focused(rows("a", "b", "c"))
	m, _ = m.Update(key("j"))

	assert.Contains(t, plain(m.View()), "Queue (2/3)")
}

func TestViewZeroSize(t *testing.T) {
	assert.Empty(t, New("q", "Q").View())
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := focused(rows("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"))
	for range 11 {
		m, _ = m.Update(key("j"))
	}

	assert.Equal(t, 11, m.Cursor())
	assert.Contains(t, plain(m.View()), "Author 11")
}

func TestEnterEmitsSelect(t *testing.T) {
	m := focused(rows("a", "b"))
	m, _ = m.Update(key("down"))
	_, cmd := m.Update(key("enter"))

	assert.Equal(t, SelectMsg{List: "queue", Index: 1}, run(t, cmd))
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := focused(rows("a", "b"))
	m.SetFocused(false)

	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	m, _ = m.Update(key("j"))
	assert.Equal(t, 0, m.Cursor())
}

func TestReorderKeys(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		m := focused(rows("a", "b"))
		_, cmd := m.Update(key("d"))
		assert.Nil(t, cmd)
	})

	t.Run("delete", func(t *testing.T) {
		m := focused(rows("a", "b"))
		m.SetReorderable(true)
		_, cmd := m.Update(key("d"))
		assert.Equal(t, DeleteMsg{List: "queue", Index: 0}, run(t, cmd))
	})

	t.Run("move down follows the row", func(t *testing.T) {
		m := focused(rows("a", "b", "c"))
		m.SetReorderable(true)
		m, cmd := m.Update(key("J"))
		assert.Equal(t, MoveMsg{List: "queue", From: 0, To: 1}, run(t, cmd))
		assert.Equal(t, 1, m.Cursor())
	})

	t.Run("move past the top is a no-op", func(t *testing.T) {
		m := focused(rows("a", "b"))
		m.SetReorderable(true)
		_, cmd := m.Update(key("K"))
		assert.Nil(t, cmd)
	})
}

func TestSetRowsClampsCursor(t *testing.T) {
	m := focused(rows("a", "b", "c"))
	m.JumpTo(2)
	m.SetRows(rows("a"))

	assert.Equal(t, 0, m.Cursor())
}

func TestQueueRows(t *testing.T) {
	q := playlist.NewQueue()
	q.AddTracks([]playlist.Track{{ID: "a"}, {ID: "b"}}, playlist.AddOptions{MarkFirstActive: true})

	items := q.Items()
	r := QueueRows(items, func(it *playlist.Item) bool { return it.Track.ID == "b" })

	require.Len(t, r, 2)
	assert.True(t, r[0].Active)
	assert.False(t, r[0].Played)
	assert.True(t, r[1].Played)
}
