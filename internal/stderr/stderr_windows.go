//go:build windows

package stderr

import (
	"os"

	"github.com/rs/zerolog"
)

// Start is a no-op on Windows; libmpv logs through its own console there.
func Start(_ zerolog.Logger) error { return nil }

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) { _, _ = os.Stderr.WriteString(msg) }

// Stop is a no-op on Windows.
func Stop() {}
