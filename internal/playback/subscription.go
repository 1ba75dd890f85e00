package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

const eventBufferSize = 16

// feed is one buffered event stream of a subscription.
type feed[T any] chan T

func newFeed[T any]() feed[T] { return make(feed[T], eventBufferSize) }

// offer sends v unless the subscriber has fallen a full buffer behind.
func (f feed[T]) offer(v T, dropped *atomic.Uint64) {
	select {
	case f <- v:
	default:
		dropped.Add(1)
	}
}

// Subscription delivers stream events to one reader. Each kind has its
// own channel; none of them is ever closed, Done is.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    feed[StateChange]
	track    feed[TrackChange]
	position feed[PositionChange]
	queue    feed[QueueChange]
	mode     feed[ModeChange]
	errs     feed[ErrorEvent]
	done     chan struct{}
	once     sync.Once
	dropped  atomic.Uint64
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    newFeed[StateChange](),
		track:    newFeed[TrackChange](),
		position: newFeed[PositionChange](),
		queue:    newFeed[QueueChange](),
		mode:     newFeed[ModeChange](),
		errs:     newFeed[ErrorEvent](),
		done:     make(chan struct{}),
	}
	s.StateChanged, s.TrackChanged, s.PositionChanged = s.state, s.track, s.position
	s.QueueChanged, s.ModeChanged, s.Error = s.queue, s.mode, s.errs
	s.Done = s.done
	return s
}

// Dropped returns how many events were discarded because a buffer was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

func (s *Subscription) close() { s.once.Do(func() { close(s.done) }) }

func (s *Subscription) sendState(e StateChange) { s.state.offer(e, &s.dropped) }
func (s *Subscription) sendTrack(e TrackChange) { s.track.offer(e, &s.dropped) }
func (s *Subscription) sendQueue(e QueueChange) { s.queue.offer(e, &s.dropped) }
func (s *Subscription) sendMode(e ModeChange)   { s.mode.offer(e, &s.dropped) }
func (s *Subscription) sendError(e ErrorEvent)  { s.errs.offer(e, &s.dropped) }
func (s *Subscription) sendPosition(pos time.Duration) {
	s.position.offer(PositionChange{Position: pos}, &s.dropped)
}
