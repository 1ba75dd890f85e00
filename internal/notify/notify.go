// Package notify shows desktop notifications over the freedesktop D-Bus
// interface, falling back to beeep where there is no session bus.
package notify

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	}
	return "unknown"
}

const appName = "Streamus"

// Notification is one desktop notification.
type Notification struct {
	Title string
	Body  string
	// Icon is an icon name, a file path or an http(s) URL.
	Icon string
	// Timeout in milliseconds; -1 leaves it to the server, 0 never expires.
	Timeout int32
	// ReplacesID updates an existing notification in place when non-zero.
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier sends notifications. Notify returns id 0 when the backend
// cannot refer to a notification afterwards.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }
func (Nop) Close(uint32) error                  { return nil }
