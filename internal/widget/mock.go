package widget

// MockWidget is a test double for Widget. It records every command and
// lets tests emit widget events.
type MockWidget struct {
	events Events

	// LoadErr is returned by Load when set.
	LoadErr   error
	// AutoReady makes Load report readiness immediately.
	AutoReady bool

	loadCalls int
	commands  []string
	videos    []VideoOptions
	seeks     []float64
	volume    int
	muted     bool
	quality   Quality
	closed    bool
}

// NewMockWidget creates a mock widget.
func NewMockWidget() *MockWidget {
	return &MockWidget{}
}

func (m *MockWidget) Load(events Events) error {
	m.loadCalls++
	m.events = events
	if m.LoadErr != nil {
		return m.LoadErr
	}
	if m.AutoReady {
		events.WidgetReady()
	}
	return nil
}

func (m *MockWidget) LoadVideoByID(opts VideoOptions) error {
	m.commands = append(m.commands, "load:"+opts.ID)
	m.videos = append(m.videos, opts)
	return nil
}

func (m *MockWidget) Play() error {
	m.commands = append(m.commands, "play")
	return nil
}

func (m *MockWidget) Pause() error {
	m.commands = append(m.commands, "pause")
	return nil
}

func (m *MockWidget) Stop() error {
	m.commands = append(m.commands, "stop")
	return nil
}

func (m *MockWidget) SeekTo(seconds float64, allowSeekAhead bool) error {
	if !allowSeekAhead {
		m.commands = append(m.commands, "seek-no-ahead")
	} else {
		m.commands = append(m.commands, "seek")
	}
	m.seeks = append(m.seeks, seconds)
	return nil
}

func (m *MockWidget) SetVolume(volume int) error {
	m.commands = append(m.commands, "volume")
	m.volume = volume
	return nil
}

func (m *MockWidget) Mute() error {
	m.commands = append(m.commands, "mute")
	m.muted = true
	return nil
}

func (m *MockWidget) Unmute() error {
	m.commands = append(m.commands, "unmute")
	m.muted = false
	return nil
}

func (m *MockWidget) SetPlaybackQuality(q Quality) error {
	m.commands = append(m.commands, "quality:"+string(q))
	m.quality = q
	return nil
}

func (m *MockWidget) Close() error {
	m.closed = true
	return nil
}

// Test helpers

// EmitReady reports the widget as ready.
func (m *MockWidget) EmitReady() { m.events.WidgetReady() }

// EmitState reports a raw state change.
func (m *MockWidget) EmitState(s RawState) { m.events.WidgetStateChanged(s) }

// EmitError reports a widget error.
func (m *MockWidget) EmitError(c ErrorCode) { m.events.WidgetError(c) }

// EmitTime reports the playback position.
func (m *MockWidget) EmitTime(seconds float64) { m.events.WidgetTimeChanged(seconds) }

// EmitSeeking reports a seek starting or finishing.
func (m *MockWidget) EmitSeeking(seeking bool) { m.events.WidgetSeekingChanged(seeking) }

func (m *MockWidget) LoadCalls() int           { return m.loadCalls }
func (m *MockWidget) Commands() []string       { return m.commands }
func (m *MockWidget) Videos() []VideoOptions   { return m.videos }
func (m *MockWidget) Seeks() []float64         { return m.seeks }
func (m *MockWidget) Volume() int              { return m.volume }
func (m *MockWidget) Muted() bool              { return m.muted }
func (m *MockWidget) PlaybackQuality() Quality { return m.quality }
func (m *MockWidget) IsClosed() bool           { return m.closed }

// ResetCommands clears the recorded commands.
func (m *MockWidget) ResetCommands() {
	m.commands = nil
	m.videos = nil
	m.seeks = nil
}

// Verify MockWidget implements Widget at compile time.
var _ Widget = (*MockWidget)(nil)
