// Package debounce coalesces bursts of calls.
package debounce

import (
	"sync"
	"time"
)

// Pending is a trailing-edge operation: each Trigger restarts the timer and
// only the last function runs, once no new Trigger arrived for the delay.
//
// The function runs on the timer's goroutine.
type Pending struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

// New creates a pending operation with the given quiet period.
func New(delay time.Duration) *Pending {
	return &Pending{delay: delay}
}

// Trigger schedules fn, replacing any function still waiting.
func (p *Pending) Trigger(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fn = fn
	p.gen++
	gen := p.gen
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() {
		p.mu.Lock()
		if gen != p.gen {
			p.mu.Unlock()
			return
		}
		run := p.fn
		p.fn = nil
		p.timer = nil
		p.mu.Unlock()

		if run != nil {
			run()
		}
	})
}

// Queued reports whether a function is waiting to run.
func (p *Pending) Queued() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fn != nil
}

// Flush runs the waiting function now, on the caller's goroutine.
func (p *Pending) Flush() {
	p.mu.Lock()
	run := p.take()
	p.mu.Unlock()

	if run != nil {
		run()
	}
}

// Stop discards the waiting function.
func (p *Pending) Stop() {
	p.mu.Lock()
	p.take()
	p.mu.Unlock()
}

func (p *Pending) take() func() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	run := p.fn
	p.fn = nil
	return run
}

// Throttle lets one call through per interval and drops the rest
// (leading edge).
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

// NewThrottle creates a throttle. A nil now uses time.Now.
func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now}
}

// Allow reports whether a call may proceed, and if so starts a new interval.
func (t *Throttle) Allow() bool {
	n := t.now()
	if !t.last.IsZero() && n.Sub(t.last) < t.interval {
		return false
	}
	t.last = n
	return true
}
