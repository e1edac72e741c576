package editor

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(env map[string]string, onPath ...string) *Editor {
	e := New("")
	e.getenv = func(key string) string { return env[key] }
	e.lookPath = func(name string) (string, error) {
		for _, p := range onPath {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	return e
}

func TestCommandPrecedence(t *testing.T) {
	e := newTestEditor(map[string]string{"VISUAL": "code -w", "EDITOR": "nano"})
	cmd, err := e.Command()
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "-w"}, cmd)

	e = newTestEditor(map[string]string{"EDITOR": "nano"})
	cmd, err = e.Command()
	require.NoError(t, err)
	assert.Equal(t, []string{"nano"}, cmd)

	e = newTestEditor(map[string]string{"EDITOR": "   "})
	e.Configured = "hx"
	cmd, err = e.Command()
	require.NoError(t, err)
	assert.Equal(t, []string{"hx"}, cmd)
}

func TestCommandFallback(t *testing.T) {
	e := newTestEditor(nil, "vi", "nano")
	cmd, err := e.Command()
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/vi"}, cmd)

	e = newTestEditor(nil)
	_, err = e.Command()
	assert.ErrorIs(t, err, ErrNoEditor)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestLaunchWaitsForEditor(t *testing.T) {
	script := writeScript(t, "echo edited.com >> \"$1\"\n")
	target := filepath.Join(t.TempDir(), "domains.txt")
	require.NoError(t, os.WriteFile(target, nil, 0o644))

	e := newTestEditor(map[string]string{"EDITOR": script})
	code, err := e.Launch(target)
	require.NoError(t, err)
	assert.Zero(t, code)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "edited.com\n", string(data))
}

func TestLaunchNonZeroExit(t *testing.T) {
	script := writeScript(t, "exit 3\n")

	e := newTestEditor(map[string]string{"EDITOR": script})
	code, err := e.Launch(filepath.Join(t.TempDir(), "domains.txt"))
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestLaunchMissingEditor(t *testing.T) {
	e := newTestEditor(map[string]string{"EDITOR": filepath.Join(t.TempDir(), "missing-editor")})
	_, err := e.Launch("domains.txt")
	assert.ErrorIs(t, err, ErrEditorLaunch)
}
