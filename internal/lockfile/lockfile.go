// Package lockfile provides a PID-based advisory lock so that occurrence
// generation for a given date cannot run concurrently with itself. Two
// simultaneous runs could both observe "no existing occurrence" and
// double-insert.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/jdmerritt/planweave/internal/constants"
	"github.com/jdmerritt/planweave/internal/logger"
)

// findProcessFunc is swapped out in tests.
var findProcessFunc = ps.FindProcess

// ErrHeld is returned when another live process holds the lock.
var ErrHeld = errors.New("lock is held by another process")

// Lock is a held advisory lock. Release it when the guarded work is done.
type Lock struct {
	path string
}

// Acquire takes the named lock under dir, breaking stale locks left behind
// by processes that are no longer running.
func Acquire(dir, name string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, name+constants.LockfileSuffix)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile %s", path)
			}
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, ok := holderPID(path)
		if ok && processAlive(holder) {
			return nil, fmt.Errorf("%w (pid %d)", ErrHeld, holder)
		}

		// Stale or malformed lock: remove it and try once more.
		logger.Warn("Removing stale lockfile", "path", path, "pid", holder)
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", rerr)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrHeld, path)
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func holderPID(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func processAlive(pid int) bool {
	proc, err := findProcessFunc(pid)
	return err == nil && proc != nil
}
