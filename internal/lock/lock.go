// Package lock provides a PID lockfile guarding single-writer file backends.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitlit/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked is returned when another live process holds the lock.
var ErrLocked = errors.New("storage is locked by another process")

// Lock is a held lockfile.
type Lock struct {
	path string
	pid  int
}

// Acquire creates the lockfile at path. A lockfile left by a process that
// is no longer running is reclaimed.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getpidFunc()
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(pid) + "\n")
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, alive, err := holderAlive(path)
		if err != nil {
			return nil, err
		}
		if alive && holder != pid {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder)
		}

		logger.Warn("Reclaiming stale lockfile", "path", path, "pid", holder)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: could not acquire %s", ErrLocked, path)
}

// holderAlive reads the PID from an existing lockfile and reports whether
// that process is still running. A malformed lockfile counts as stale.
func holderAlive(path string) (int, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read lockfile: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false, nil
	}

	proc, err := findProcessFunc(pid)
	if err != nil {
		return pid, false, fmt.Errorf("failed to look up process %d: %w", pid, err)
	}
	return pid, proc != nil, nil
}

// Path returns the lockfile location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
