package notify

import (
	"slices"
	"sync"
)

// Mock records notifications for tests. IDs are assigned sequentially
// unless a notification replaces an existing one.
type Mock struct {
	mu     sync.Mutex
	sent   []Notification
	closed []uint32
	nextID uint32
	err    error
}

// NewMock creates an empty mock.
func NewMock() *Mock { return &Mock{} }

func (m *Mock) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.sent = append(m.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	m.nextID++
	return m.nextID, nil
}

func (m *Mock) Close(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, id)
	return nil
}

// SetError makes subsequent Notify calls fail.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Sent returns the notifications sent so far.
func (m *Mock) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

// Closed returns the ids closed so far.
func (m *Mock) Closed() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.closed)
}

var (
	_ Notifier = (*Mock)(nil)
	_ Notifier = Nop{}
)
