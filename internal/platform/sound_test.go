//go:build linux || darwin

package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, candidate := range available {
			if candidate == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestPickSoundSkipsMissingPlayersAndFiles(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "chime.wav")
	require.NoError(t, os.WriteFile(existing, []byte("RIFF"), 0o644))

	candidates := []soundCommand{
		{Name: "first", File: existing},
		{Name: "second", File: filepath.Join(t.TempDir(), "missing.wav")},
		{Name: "third", Args: []string{"-q"}, File: existing},
	}

	sound, err := pickSound(candidates, fakeLookPath("second", "third"))
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/third", sound.path)
	assert.Equal(t, []string{"-q", existing}, sound.args)
}

func TestPickSoundUnsupported(t *testing.T) {
	_, err := pickSound([]soundCommand{{Name: "nothing"}}, fakeLookPath())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCommandSoundPlay(t *testing.T) {
	ok := &CommandSound{path: "true"}
	assert.NoError(t, ok.Play(context.Background()))

	failing := &CommandSound{path: "false"}
	assert.Error(t, failing.Play(context.Background()))
}
