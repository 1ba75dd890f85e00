// Package loop provides the single logical thread that owns the queue,
// the player controller and the stream.
//
// Widget events, timers and network completions arrive on arbitrary
// goroutines. They are posted to a Dispatcher and run one at a time, so the
// core never needs locks.
package loop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Call when the loop is no longer running.
var ErrStopped = errors.New("loop stopped")

// Dispatcher runs functions on the owning thread.
type Dispatcher interface {
	Post(fn func())
}

// Inline runs posted functions immediately on the caller's goroutine.
// It is meant for tests and for code already on the owning thread.
type Inline struct{}

// Post runs fn synchronously.
func (Inline) Post(fn func()) { fn() }

// Func adapts a plain function, such as a Bubble Tea program's Send wrapper,
// to a Dispatcher.
type Func func(fn func())

// Post calls f(fn).
func (f Func) Post(fn func()) { f(fn) }

// Loop is a goroutine-backed Dispatcher.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool
}

// New creates a loop. Nothing runs until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn. It never blocks. Functions posted after the loop stopped
// are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes posted functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Call posts fn to d and waits for its result. It returns ErrStopped if the
// context ends first.
func Call[T any](ctx context.Context, d Dispatcher, fn func() T) (T, error) {
	result := make(chan T, 1)
	d.Post(func() { result <- fn() })

	select {
	case v := <-result:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ErrStopped
	}
}
