// Package storage persists the duration table, completion history and user
// preferences as independent blobs in a key-value Store.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get for keys that were never written.
var ErrNotFound = errors.New("key not found")

// Keys under which each blob is stored.
const (
	KeySettings      = "pomodoroSettings"
	KeyHistory       = "pomodoroHistory"
	KeyTheme         = "pomodoroTheme"
	KeyNotifications = "pomodoroNotifications"
	KeyMode          = "pomodoroMode"
)

// Store is a generic key-value store of opaque values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
