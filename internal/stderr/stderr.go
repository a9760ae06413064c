//go:build !windows

// Package stderr captures stderr output from C libraries (ALSA, oto)
// that write directly to file descriptor 2, bypassing Go's os.Stderr.
// Captured lines are handed to a callback so the daemon can route them
// through its logger.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
)

var (
	mu         sync.RWMutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
	started    bool
)

// Start begins capturing stderr output and calls onLine for every
// non-blank line. Must be called before any C library initialization.
// Returns an error if capture cannot be set up, but the program can continue
// without stderr capture (errors will just go to the original stderr).
func Start(onLine func(line string)) error {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})
	started = true

	go forward(r, onLine, done)
	return nil
}

func forward(r *os.File, onLine func(string), done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && onLine != nil {
			onLine(line)
		}
	}
}

// Original returns a writer for the original stderr. Loggers that also
// receive captured lines must write here, or they would feed themselves.
func Original() io.Writer {
	return originalWriter{}
}

type originalWriter struct{}

// Write holds the read lock for the whole write so Stop cannot close the
// saved descriptor underneath it.
func (originalWriter) Write(p []byte) (int, error) {
	mu.RLock()
	defer mu.RUnlock()
	if origStderr < 0 {
		return os.Stderr.Write(p)
	}
	return syscall.Write(origStderr, p)
}

// Stop restores the original stderr and waits until every captured line
// has been forwarded. The lock is released while draining: the callback
// may itself write through Original.
func Stop() {
	mu.Lock()
	if !started || origStderr < 0 {
		mu.Unlock()
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	saved := origStderr
	// fd 2 is the real stderr again, so Original can fall back to it.
	origStderr = -1
	r, w, d := pipeRead, pipeWrite, done
	mu.Unlock()

	// fd 2 no longer points at the pipe; closing our end lets the reader drain.
	w.Close()
	<-d
	r.Close()

	mu.Lock()
	_ = syscall.Close(saved)
	pipeRead, pipeWrite, done = nil, nil, nil
	started = false
	mu.Unlock()
}
