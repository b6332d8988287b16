// Package platform adapts OS facilities used by the timer: a completion
// chime, a screen wake-lock and the single-instance guard.
package platform

import "errors"

// ErrUnsupported is returned when the current system lacks a capability.
var ErrUnsupported = errors.New("capability unsupported on this system")

const wakeLockApp = "Pomodoro"
