package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService   = "org.freedesktop.ScreenSaver"
	screenSaverPath      = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverInterface = "org.freedesktop.ScreenSaver"
)

// WakeLock inhibits the screensaver through the session bus.
type WakeLock struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	cookie uint32
	held   bool
}

// NewWakeLock returns a wake-lock backed by org.freedesktop.ScreenSaver. The
// bus is only contacted on Acquire.
func NewWakeLock() (*WakeLock, error) {
	return &WakeLock{}, nil
}

// Acquire inhibits the screensaver. No-op while already held.
func (lock *WakeLock) Acquire(reason string) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held {
		return nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("acquire wake lock: %w: %w", ErrUnsupported, err)
	}
	var cookie uint32
	call := conn.Object(screenSaverService, screenSaverPath).
		Call(screenSaverInterface+".Inhibit", 0, wakeLockApp, reason)
	if err := call.Store(&cookie); err != nil {
		_ = conn.Close()
		return fmt.Errorf("acquire wake lock: %w", err)
	}

	lock.conn = conn
	lock.cookie = cookie
	lock.held = true
	return nil
}

// Release lifts the inhibition. No-op while not held.
func (lock *WakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held {
		return nil
	}

	call := lock.conn.Object(screenSaverService, screenSaverPath).
		Call(screenSaverInterface+".UnInhibit", 0, lock.cookie)
	closeErr := lock.conn.Close()
	lock.conn = nil
	lock.held = false
	if call.Err != nil {
		return fmt.Errorf("release wake lock: %w", call.Err)
	}
	if closeErr != nil {
		return fmt.Errorf("release wake lock: close bus: %w", closeErr)
	}
	return nil
}
