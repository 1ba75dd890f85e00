package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is how long a now playing notification stays up.
const DefaultTimeout = 4 * time.Second

// NowPlaying shows one "now playing" notification at a time. A new track
// replaces the previous notification, and each notification is closed
// after the timeout.
//
// NowPlaying is safe for concurrent use; the close timer fires on its own
// goroutine.
type NowPlaying struct {
	n       Notifier
	timeout time.Duration
	log     zerolog.Logger

	mu    sync.Mutex
	id    uint32
	gen   uint64
	timer *time.Timer
}

// NewNowPlaying wraps n. A non-positive timeout uses DefaultTimeout.
func NewNowPlaying(n Notifier, timeout time.Duration, log zerolog.Logger) *NowPlaying {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &NowPlaying{n: n, timeout: timeout, log: log}
}

// ShowNowPlaying displays title with the track thumbnail.
func (p *NowPlaying) ShowNowPlaying(title, thumbnailURL string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimer()
	id, err := p.n.Notify(Notification{
		Title:      "Now playing",
		Body:       title,
		Icon:       thumbnailURL,
		Timeout:    int32(p.timeout / time.Millisecond),
		ReplacesID: p.id,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("now playing notification failed")
		return
	}
	p.id = id
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.timeout, func() { p.expire(gen) })
}

// Dismiss closes the current notification now.
func (p *NowPlaying) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimer()
	p.closeCurrent()
}

func (p *NowPlaying) expire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Superseded by a newer notification.
	if p.gen != gen {
		return
	}
	p.timer = nil
	p.closeCurrent()
}

func (p *NowPlaying) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *NowPlaying) closeCurrent() {
	if p.id == 0 {
		return
	}
	if err := p.n.Close(p.id); err != nil {
		p.log.Debug().Err(err).Uint32("id", p.id).Msg("closing notification failed")
	}
	p.id = 0
}
