package effects

// Permission is the user's answer to showing system notifications.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	// PermissionPrompt means the user has not been asked yet.
	PermissionPrompt Permission = "prompt"
)

// Valid reports whether permission is one of the three known states.
func (permission Permission) Valid() bool {
	switch permission {
	case PermissionGranted, PermissionDenied, PermissionPrompt:
		return true
	}
	return false
}
