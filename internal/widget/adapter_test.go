package widget

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/streamus/internal/loop"
)

type recorder struct {
	events   []string
	ready    []bool
	loading  []bool
	attempts []int
	states   []RawState
	errors   []ErrorCode
	times    []float64
}

func (r *recorder) ReadyChanged(ready bool) {
	r.events = append(r.events, "ready")
	r.ready = append(r.ready, ready)
}

func (r *recorder) LoadingChanged(loading bool) {
	r.events = append(r.events, "loading")
	r.loading = append(r.loading, loading)
}

func (r *recorder) LoadAttemptChanged(attempt int) { r.attempts = append(r.attempts, attempt) }
func (r *recorder) StateChanged(state RawState)    { r.states = append(r.states, state) }
func (r *recorder) Error(code ErrorCode)           { r.errors = append(r.errors, code) }
func (r *recorder) TimeChanged(seconds float64)    { r.times = append(r.times, seconds) }
func (r *recorder) SeekingChanged(bool)            {}

func newTestAdapter(opts Options) (*Adapter, *MockWidget, *recorder) {
	return newAdapterOn(loop.Inline{}, opts)
}

func newAdapterOn(d loop.Dispatcher, opts Options) (*Adapter, *MockWidget, *recorder) {
	w := NewMockWidget()
	opts.Logger = zerolog.Nop()
	a := NewAdapter(w, d, opts)
	r := &recorder{}
	a.SetListener(r)
	return a, w, r
}

// queue holds work posted from timer goroutines until the test runs it.
type queue chan func()

func (q queue) Post(fn func()) { q <- fn }

func (q queue) drain() {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

// advance moves the fake clock forward and runs whatever the timers posted.
func (q queue) advance(d time.Duration) {
	time.Sleep(d)
	synctest.Wait()
	q.drain()
}

func TestAdapter_PreloadThenReady(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, w, r := newTestAdapter(Options{})

		a.Preload()
		assert.Equal(t, Loading, a.Phase())
		assert.Equal(t, 1, w.LoadCalls())

		// Preload while loading is a no-op.
		a.Preload()
		assert.Equal(t, 1, w.LoadCalls())

		w.EmitReady()
		assert.True(t, a.Ready())
		assert.False(t, a.Loading())
		assert.Equal(t, []string{"loading", "ready", "loading"}, r.events)
		assert.Equal(t, []bool{true, false}, r.loading)
		assert.Equal(t, []bool{true}, r.ready)

		require.NoError(t, a.Close())
		assert.True(t, w.IsClosed())
	})
}

func TestAdapter_ReadyReportedBeforeLoadingCleared(t *testing.T) {
	a, w, r := newTestAdapter(Options{})
	w.AutoReady = true

	a.Preload()

	assert.Equal(t, []string{"loading", "ready", "loading"}, r.events)
	assert.True(t, a.Ready())
	_ = a.Close()
}

func TestAdapter_RetriesThenGivesUp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := make(queue, 16)
		a, w, r := newAdapterOn(q, Options{MaxLoadAttempts: 3, LoadAttemptDelay: 6 * time.Second})

		a.Preload()
		q.advance(6*time.Second + time.Millisecond)
		assert.Equal(t, 2, a.LoadAttempt())
		assert.Equal(t, 2, w.LoadCalls(), "each attempt retries the load")

		q.advance(6 * time.Second)
		assert.Equal(t, 3, a.LoadAttempt())

		q.advance(6 * time.Second)
		assert.Equal(t, Failed, a.Phase())
		assert.False(t, a.Loading())
		assert.Equal(t, []bool{true, false}, r.loading)
		// Leaving loading resets the attempt counter.
		assert.Equal(t, []int{2, 3, 1}, r.attempts)

		// No further attempts once failed.
		q.advance(time.Minute)
		assert.Equal(t, 3, w.LoadCalls())
	})
}

func TestAdapter_ReadyWhileRetrying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := make(queue, 16)
		a, w, _ := newAdapterOn(q, Options{MaxLoadAttempts: 5, LoadAttemptDelay: time.Second})

		a.Preload()
		q.advance(time.Second + time.Millisecond)
		q.advance(time.Second)
		require.Equal(t, 3, a.LoadAttempt())

		w.EmitReady()
		q.drain()
		assert.Equal(t, Ready, a.Phase())
		assert.Equal(t, 1, a.LoadAttempt())

		calls := w.LoadCalls()
		q.advance(10 * time.Second)
		assert.Equal(t, calls, w.LoadCalls(), "ticker must stop once ready")
	})
}

func TestAdapter_LoadErrorKeepsLoading(t *testing.T) {
	a, w, _ := newTestAdapter(Options{})
	w.LoadErr = errors.New("no libmpv")

	a.Preload()

	assert.Equal(t, Loading, a.Phase())
	_ = a.Close()
}

func TestAdapter_FailedCanRecover(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := make(queue, 16)
		a, w, _ := newAdapterOn(q, Options{MaxLoadAttempts: 1, LoadAttemptDelay: time.Second})

		a.Preload()
		q.advance(time.Second + time.Millisecond)
		require.Equal(t, Failed, a.Phase())

		a.ForegroundStarted()
		assert.Equal(t, Loading, a.Phase())
		w.EmitReady()
		q.drain()
		assert.Equal(t, Ready, a.Phase())

		// Foreground starting while ready does nothing.
		a.ForegroundStarted()
		assert.Equal(t, Ready, a.Phase())
		_ = a.Close()
	})
}

func TestAdapter_ReadyWhileUnloadedIsIgnored(t *testing.T) {
	a, w, r := newTestAdapter(Options{})
	_ = w.Load(a)

	w.EmitReady()

	assert.Equal(t, Unloaded, a.Phase())
	assert.Empty(t, r.events)
}

func TestAdapter_CommandsRequireReady(t *testing.T) {
	a, w, _ := newTestAdapter(Options{})

	assert.ErrorIs(t, a.Play(), ErrNotReady)
	assert.ErrorIs(t, a.LoadVideoByID(VideoOptions{ID: "x"}), ErrNotReady)
	assert.Empty(t, w.Commands())
}

func readyAdapter(t *testing.T) (*Adapter, *MockWidget, *recorder) {
	t.Helper()
	a, w, r := newTestAdapter(Options{})
	w.AutoReady = true
	a.Preload()
	require.True(t, a.Ready())
	t.Cleanup(func() { _ = a.Close() })
	return a, w, r
}

func TestAdapter_ForwardsCommands(t *testing.T) {
	a, w, _ := readyAdapter(t)

	require.NoError(t, a.Play())
	require.NoError(t, a.Pause())
	require.NoError(t, a.SeekTo(42))
	require.NoError(t, a.SetVolume(30))
	require.NoError(t, a.SetMuted(true))
	require.NoError(t, a.SetMuted(false))
	require.NoError(t, a.SetPlaybackQuality(QualitySmall))
	require.NoError(t, a.Stop())

	assert.Equal(t, []string{"play", "pause", "seek", "volume", "mute", "unmute", "quality:small", "stop"}, w.Commands())
	assert.Equal(t, []float64{42}, w.Seeks())
	assert.Equal(t, 30, w.Volume())
}

func TestAdapter_CueVideoPausesOnFirstBuffer(t *testing.T) {
	a, w, r := readyAdapter(t)

	require.NoError(t, a.CueVideoByID(VideoOptions{ID: "abc"}))
	assert.Equal(t, []string{"load:abc", "pause"}, w.Commands())

	w.ResetCommands()
	w.EmitState(RawBuffering)
	assert.Equal(t, []string{"pause"}, w.Commands())

	// Only the first buffering after a cue pauses.
	w.ResetCommands()
	w.EmitState(RawBuffering)
	assert.Empty(t, w.Commands())
	assert.Equal(t, []RawState{RawBuffering, RawBuffering}, r.states)
	assert.Equal(t, RawBuffering, a.State())
}

func TestAdapter_ReallyBadErrorReloads(t *testing.T) {
	a, w, r := readyAdapter(t)
	w.AutoReady = false

	w.EmitError(ErrReallyBad)

	assert.Equal(t, Loading, a.Phase())
	assert.Equal(t, 2, w.LoadCalls())
	assert.Empty(t, r.errors, "recoverable errors are not forwarded")
}

func TestAdapter_OtherErrorsForwarded(t *testing.T) {
	a, w, r := readyAdapter(t)

	w.EmitError(ErrVideoNotFound)

	assert.Equal(t, []ErrorCode{ErrVideoNotFound}, r.errors)
	assert.True(t, a.Ready())
}

func TestAdapter_ForwardsTime(t *testing.T) {
	_, w, r := readyAdapter(t)

	w.EmitTime(12.5)

	assert.Equal(t, []float64{12.5}, r.times)
}

func TestPhase_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{Unloaded, Loading, true},
		{Unloaded, Ready, false},
		{Loading, Ready, true},
		{Loading, Failed, true},
		{Ready, Loading, true},
		{Ready, Failed, false},
		{Failed, Loading, true},
		{Failed, Ready, true},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
