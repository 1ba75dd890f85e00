package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/streamus/internal/loop"
)

// runMsg carries work posted to the Bridge. Update runs it, which keeps the
// stream, the player and the search on the program's goroutine.
type runMsg func()

// Bridge is the dispatcher the services post to. Posting never blocks:
// work is queued and a pump goroutine hands it to the program in order.
type Bridge struct {
	pump *loop.Loop
	send func(tea.Msg) // read only by the pump
}

// NewBridge creates a bridge. Posted work is held until Start.
func NewBridge() *Bridge {
	return &Bridge{pump: loop.New()}
}

// Start delivers queued and future work through send, usually a
// tea.Program's Send, until ctx ends. Call it once.
func (b *Bridge) Start(ctx context.Context, send func(tea.Msg)) {
	b.send = send
	go b.pump.Run(ctx)
}

// Post implements loop.Dispatcher.
func (b *Bridge) Post(fn func()) {
	b.pump.Post(func() { b.send(runMsg(fn)) })
}

// Done is closed once the pump has stopped.
func (b *Bridge) Done() <-chan struct{} { return b.pump.Done() }

var _ loop.Dispatcher = (*Bridge)(nil)
