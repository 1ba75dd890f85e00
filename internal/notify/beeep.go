package notify

import "github.com/gen2brain/beeep"

// beeepNotifier sends notifications through the platform's native
// mechanism. It cannot replace or close notifications.
type beeepNotifier struct{}

func newBeeep() *beeepNotifier {
	beeep.AppName = appName
	return &beeepNotifier{}
}

func (*beeepNotifier) Notify(n Notification) (uint32, error) {
	return 0, beeep.Notify(n.Title, n.Body, n.Icon)
}

func (*beeepNotifier) Close(_ uint32) error { return nil }
