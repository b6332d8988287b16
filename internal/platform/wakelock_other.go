//go:build !linux && !darwin && !windows

package platform

// WakeLock is unavailable on this system.
type WakeLock struct{}

// NewWakeLock always returns ErrUnsupported.
func NewWakeLock() (*WakeLock, error) {
	return nil, ErrUnsupported
}

// Acquire reports ErrUnsupported.
func (*WakeLock) Acquire(string) error { return ErrUnsupported }

// Release is a no-op.
func (*WakeLock) Release() error { return nil }
