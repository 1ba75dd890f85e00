package widget

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// eventLog records raw widget events as strings.
type eventLog struct{ got []string }

func (e *eventLog) WidgetReady()                   { e.got = append(e.got, "ready") }
func (e *eventLog) WidgetStateChanged(s RawState)  { e.got = append(e.got, s.String()) }
func (e *eventLog) WidgetError(c ErrorCode)        { e.got = append(e.got, "error") }
func (e *eventLog) WidgetTimeChanged(sec float64)  { e.got = append(e.got, fmt.Sprintf("t=%g", sec)) }
func (e *eventLog) WidgetSeekingChanged(seek bool) { e.got = append(e.got, fmt.Sprintf("seeking=%v", seek)) }

func (e *eventLog) take() []string {
	got := e.got
	e.got = nil
	return got
}

func TestSample_State(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   RawState
	}{
		{"playing", Sample{}, RawPlaying},
		{"paused", Sample{Paused: true}, RawPaused},
		{"cache stall", Sample{PausedForCache: true}, RawBuffering},
		{"seek while paused", Sample{Paused: true, Seeking: true}, RawBuffering},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sample.State())
		})
	}
}

func TestTracker_ReportsOnlyChanges(t *testing.T) {
	tr := NewTracker()
	e := &eventLog{}

	tr.Observe(e, Sample{Position: 1, HasPosition: true})
	assert.Equal(t, []string{"playing", "t=1"}, e.take())

	tr.Observe(e, Sample{Position: 1, HasPosition: true})
	assert.Empty(t, e.take())

	tr.Observe(e, Sample{Paused: true, Position: 1, HasPosition: true})
	assert.Equal(t, []string{"paused"}, e.take())
}

func TestTracker_PlayingAfterInjectedStateIsReported(t *testing.T) {
	tr := NewTracker()
	e := &eventLog{}
	tr.Observe(e, Sample{})
	e.take()

	// The file ends, the next one loads and starts playing.
	tr.Set(e, RawEnded)
	tr.Set(e, RawBuffering)
	assert.Equal(t, []string{"ended", "buffering"}, e.take())

	tr.Observe(e, Sample{})
	assert.Equal(t, []string{"playing"}, e.take())
	assert.Equal(t, RawPlaying, tr.State())
}

func TestTracker_PositionReportedAgainAfterLoad(t *testing.T) {
	tr := NewTracker()
	e := &eventLog{}
	tr.Observe(e, Sample{Position: 0, HasPosition: true})
	e.take()

	tr.Set(e, RawBuffering)
	tr.Observe(e, Sample{Position: 0, HasPosition: true})
	assert.Equal(t, []string{"buffering", "playing", "t=0"}, e.take())
}

func TestTracker_Seeking(t *testing.T) {
	tr := NewTracker()
	e := &eventLog{}
	tr.Observe(e, Sample{Paused: true})
	e.take()

	tr.Observe(e, Sample{Paused: true, Seeking: true})
	assert.Equal(t, []string{"seeking=true", "buffering"}, e.take())

	tr.Observe(e, Sample{Paused: true})
	assert.Equal(t, []string{"paused", "seeking=false"}, e.take())
}

func TestTracker_SetClearsSeek(t *testing.T) {
	tr := NewTracker()
	e := &eventLog{}
	tr.Observe(e, Sample{Seeking: true})
	e.take()

	tr.Set(e, RawBuffering)
	assert.Equal(t, []string{"seeking=false", "buffering"}, e.take())
}

func TestTracker_FeedsAdapter(t *testing.T) {
	a, _, r := readyAdapter(t)
	tr := NewTracker()

	tr.Observe(a, Sample{Position: 3, HasPosition: true})
	tr.Set(a, RawEnded)

	assert.Equal(t, []RawState{RawPlaying, RawEnded}, r.states)
	assert.Equal(t, []float64{3}, r.times)
}
