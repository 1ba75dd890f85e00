//go:build !windows

// Package stderr captures output that C libraries (libmpv, ffmpeg) write
// straight to file descriptor 2, so it lands in the log instead of on top
// of the TUI.
package stderr

import (
	"os"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	origFD   = -1
	pipeRead *os.File
	pipeW    *os.File
	done     chan struct{}
)

// Start redirects fd 2 to a pipe whose lines are logged at warn level.
// Call it before the player widget is created. On failure the program can
// carry on with the terminal's stderr.
func Start(log zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if origFD >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	saved, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(saved)
		r.Close()
		w.Close()
		return err
	}

	origFD, pipeRead, pipeW = saved, r, w
	done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		forward(r, log.With().Str("component", "stderr").Logger())
	}(done)
	return nil
}

// WriteOriginal writes to the terminal's stderr even while capturing.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origFD
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores fd 2 and waits for buffered lines to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if origFD < 0 {
		return
	}
	_ = syscall.Dup2(origFD, int(os.Stderr.Fd()))
	_ = syscall.Close(origFD)
	pipeW.Close()
	<-done
	pipeRead.Close()
	origFD = -1
}
