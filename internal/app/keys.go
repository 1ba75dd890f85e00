// internal/app/keys.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/keymap"
	"github.com/llehouerou/streamus/internal/widget"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirm.Active() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if m.statusErr {
		m.setInfo("")
	}

	if m.searching && m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch key {
	case "esc":
		if m.searching {
			m.closeSearch()
		}
		return m, nil
	case "tab":
		m.switchFocus()
		return m, nil
	}

	// Panel keys first: lists own j/k, enter, d and reordering.
	var cmd tea.Cmd
	if m.results.IsFocused() {
		if key == "/" {
			return m.openSearch()
		}
		m.results, cmd = m.results.Update(msg)
	} else {
		m.queue, cmd = m.queue.Update(msg)
	}
	if cmd != nil || isListKey(key) {
		return m, cmd
	}

	return m.handleAction(m.keys.Resolve(key))
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		if rows := m.results.Rows(); len(rows) > 0 {
			m.addAndPlay(rows[m.results.Cursor()].Track)
			m.sync()
		}
		return m, nil
	case "down", "tab":
		m.input.Blur()
		m.queue.SetFocused(false)
		m.results.SetFocused(true)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.search.SetQuery(v)
		m.sync()
	}
	return m, cmd
}

func (m Model) handleAction(action keymap.Action) (tea.Model, tea.Cmd) {
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionSearch:
		return m.openSearch()
	case keymap.ActionSwitchFocus:
		m.switchFocus()
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp

	case keymap.ActionPlayPause:
		m.stream.TogglePlayPause()
	case keymap.ActionNextTrack:
		m.stream.Next()
	case keymap.ActionPrevTrack:
		m.stream.PreviousOrRestart()
	case keymap.ActionSeekForward:
		m.seekBy(seekStep)
	case keymap.ActionSeekBack:
		m.seekBy(-seekStep)
	case keymap.ActionVolumeUp:
		m.player.AdjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.player.AdjustVolume(-volumeStep)
	case keymap.ActionToggleMute:
		m.player.ToggleMuted()
	case keymap.ActionToggleShuffle:
		m.stream.ToggleShuffle()
	case keymap.ActionToggleRadio:
		m.stream.ToggleRadio()
	case keymap.ActionCycleRepeat:
		m.stream.CycleRepeat()
	case keymap.ActionReload:
		m.reloadWidget()

	case keymap.ActionClear:
		if !m.stream.Queue().IsEmpty() {
			m.confirm.Show("Clear the queue?", clearQueue{})
		}
	default:
		return m, nil
	}
	m.sync()
	return m, nil
}

// reloadWidget retries a widget that is not up. A ready widget is left alone.
func (m *Model) reloadWidget() {
	if m.widget == nil || m.widget.Phase() == widget.Ready {
		return
	}
	m.log.Info().Stringer("phase", m.widget.Phase()).Msg("reloading widget")
	m.widget.Preload()
}

func (m *Model) seekBy(delta time.Duration) {
	pos := time.Duration(m.player.CurrentTime()*float64(time.Second)) + delta
	m.stream.Seek(max(pos, 0))
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	if !m.searching {
		m.searching = true
		m.search.StopClearQueryTimer()
		m.input.SetValue(m.search.Query())
		m.input.CursorEnd()
		m.resize()
	}
	m.queue.SetFocused(false)
	m.results.SetFocused(false)
	return m, m.input.Focus()
}

func (m *Model) closeSearch() {
	m.searching = false
	m.input.Blur()
	m.results.SetFocused(false)
	m.queue.SetFocused(true)
	m.search.StartClearQueryTimer()
	m.resize()
}

// switchFocus cycles through the input, the results and the queue while
// searching.
func (m *Model) switchFocus() {
	if !m.searching {
		return
	}
	if m.queue.IsFocused() {
		m.queue.SetFocused(false)
		m.input.Focus()
		return
	}
	m.results.SetFocused(false)
	m.queue.SetFocused(true)
}

// isListKey reports keys the panels consume even when they do nothing,
// such as moving past the end.
func isListKey(key string) bool {
	switch key {
	case "j", "k", "up", "down", "g", "G", "home", "end", "ctrl+d", "ctrl+u",
		"enter", "d", "delete", "J", "K", "shift+up", "shift+down":
		return true
	}
	return false
}
