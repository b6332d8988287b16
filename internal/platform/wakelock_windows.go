package platform

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esDisplayRequired = 0x00000002
)

// WakeLock holds ES_DISPLAY_REQUIRED on a dedicated OS thread, since the
// execution state belongs to the thread that set it.
type WakeLock struct {
	mu   sync.Mutex
	proc *syscall.LazyProc
	stop chan struct{}
	done chan struct{}
}

// NewWakeLock resolves SetThreadExecutionState.
func NewWakeLock() (*WakeLock, error) {
	proc := syscall.NewLazyDLL("kernel32.dll").NewProc("SetThreadExecutionState")
	if err := proc.Find(); err != nil {
		return nil, ErrUnsupported
	}
	return &WakeLock{proc: proc}, nil
}

// Acquire keeps the display on. No-op while already held.
func (lock *WakeLock) Acquire(string) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		previous, _, err := lock.proc.Call(uintptr(esContinuous | esDisplayRequired))
		if previous == 0 {
			result <- fmt.Errorf("acquire wake lock: %w", err)
			return
		}
		result <- nil
		<-stop
		_, _, _ = lock.proc.Call(uintptr(esContinuous))
	}()

	if err := <-result; err != nil {
		<-done
		return err
	}
	lock.stop = stop
	lock.done = done
	return nil
}

// Release restores the normal execution state. No-op while not held.
func (lock *WakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.stop == nil {
		return nil
	}

	close(lock.stop)
	<-lock.done
	lock.stop = nil
	lock.done = nil
	return nil
}
