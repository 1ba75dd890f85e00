//go:build !linux

package notify

// New returns a notifier using the platform's native notifications.
func New() (Notifier, error) {
	return newBeeep(), nil
}
