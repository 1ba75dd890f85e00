package playback

import "fmt"

// InvariantError reports a navigation bug. It is raised with panic: the
// queue cannot be trusted after one.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("playback: %s: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
