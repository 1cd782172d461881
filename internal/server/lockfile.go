package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitflow/internal/constants"
)

var (
	ErrNoLock    = errors.New("no server lockfile")
	ErrStaleLock = errors.New("stale server lockfile")

	findProcessFunc = ps.FindProcess
)

// Lock is the content of the serve lockfile: "addr|pid".
type Lock struct {
	Addr string
	PID  int
}

func LockfilePath(configDir string) string {
	return filepath.Join(configDir, constants.ServeLockfileName)
}

// WriteLock records addr and the current process ID at path.
func WriteLock(path, addr string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	content := fmt.Sprintf("%s|%d", addr, os.Getpid())
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

func RemoveLock(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func ReadLock(path string) (Lock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Lock{}, ErrNoLock
		}
		return Lock{}, fmt.Errorf("failed to read lockfile: %w", err)
	}

	addr, rawPID, ok := strings.Cut(strings.TrimSpace(string(content)), "|")
	if !ok || addr == "" {
		return Lock{}, fmt.Errorf("%w: lockfile is malformed", ErrStaleLock)
	}
	pid, err := strconv.Atoi(rawPID)
	if err != nil || pid <= 0 {
		return Lock{}, fmt.Errorf("%w: invalid process ID in lockfile", ErrStaleLock)
	}
	return Lock{Addr: addr, PID: pid}, nil
}

// RunningServer returns the lock of a live habitflow serve process.
// ErrNoLock means no server was started; ErrStaleLock means the recorded
// process is gone or is something else.
func RunningServer(path string) (Lock, error) {
	lock, err := ReadLock(path)
	if err != nil {
		return Lock{}, err
	}
	process, err := findProcessFunc(lock.PID)
	if err != nil {
		return Lock{}, fmt.Errorf("failed to look up process %d: %w", lock.PID, err)
	}
	if process == nil {
		return lock, fmt.Errorf("%w: process %d is not running", ErrStaleLock, lock.PID)
	}
	if exe := process.Executable(); exe != constants.AppName {
		return lock, fmt.Errorf("%w: process %d is %s, not %s", ErrStaleLock, lock.PID, exe, constants.AppName)
	}
	return lock, nil
}
