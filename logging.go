package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/config"
)

// openLog returns a logger writing JSON lines to the configured log file.
// The TUI owns the terminal, so nothing is logged to stderr.
func openLog(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	path := cfg.File
	if path == "" {
		if path, err = xdg.StateFile(filepath.Join("streamus", "streamus.log")); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { _ = f.Close() }, nil
}
