package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const soundTimeout = 5 * time.Second

// soundCommand is one way of playing a chime. File, when set, must exist for
// the command to be usable.
type soundCommand struct {
	Name string
	Args []string
	File string
}

// CommandSound plays the chime by running an external player.
type CommandSound struct {
	path string
	args []string
}

// NewSound returns the first usable player for this system, or ErrUnsupported.
func NewSound() (*CommandSound, error) {
	return pickSound(soundCandidates(), exec.LookPath)
}

func pickSound(candidates []soundCommand, lookPath func(string) (string, error)) (*CommandSound, error) {
	for _, candidate := range candidates {
		if candidate.File != "" {
			if _, err := os.Stat(candidate.File); err != nil {
				continue
			}
		}
		path, err := lookPath(candidate.Name)
		if err != nil {
			continue
		}
		args := append([]string(nil), candidate.Args...)
		if candidate.File != "" {
			args = append(args, candidate.File)
		}
		return &CommandSound{path: path, args: args}, nil
	}
	return nil, ErrUnsupported
}

// Play runs the player and waits for it, bounded by a short timeout.
func (sound *CommandSound) Play(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, soundTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, sound.path, sound.args...).Run(); err != nil {
		return fmt.Errorf("play sound: %w", err)
	}
	return nil
}
