//go:build !linux

package mpris

import (
	"errors"

	"github.com/rs/zerolog"
)

// Adapter exists so callers compile everywhere; MPRIS is Linux only.
type Adapter struct{}

// New reports errors.ErrUnsupported outside Linux.
func New(*Controls, zerolog.Logger) (*Adapter, error) {
	return nil, errors.ErrUnsupported
}

func (*Adapter) Close() error { return nil }
