// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/playback"
)

const tickInterval = time.Second

// TickCmd returns a command that sends TickMsg after one interval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchStream waits for the next stream event and converts it to a tea.Msg.
// Handlers re-issue it to keep listening.
func watchStream(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return streamErrorMsg(e)
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case <-sub.StateChanged:
		case <-sub.QueueChanged:
		case <-sub.ModeChanged:
		case <-sub.PositionChanged:
		case <-sub.Done:
			return streamClosedMsg{}
		}
		return streamUpdateMsg{}
	}
}
