//go:build !linux && !darwin && !windows

package platform

func soundCandidates() []soundCommand {
	return nil
}
