package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

// WakeLock keeps the display awake with a caffeinate child process.
type WakeLock struct {
	mu   sync.Mutex
	path string
	cmd  *exec.Cmd
}

// NewWakeLock returns ErrUnsupported when caffeinate is missing.
func NewWakeLock() (*WakeLock, error) {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return nil, ErrUnsupported
	}
	return &WakeLock{path: path}, nil
}

// Acquire starts caffeinate tied to this process. No-op while already held.
func (lock *WakeLock) Acquire(string) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd != nil {
		return nil
	}

	cmd := exec.Command(lock.path, "-d", "-w", strconv.Itoa(os.Getpid()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("acquire wake lock: %w", err)
	}
	lock.cmd = cmd
	return nil
}

// Release stops caffeinate. No-op while not held.
func (lock *WakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd == nil {
		return nil
	}

	cmd := lock.cmd
	lock.cmd = nil
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("release wake lock: %w", err)
	}
	_ = cmd.Wait()
	return nil
}
