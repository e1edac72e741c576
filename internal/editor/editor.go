package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrNoEditor     = errors.New("no editor configured: set $EDITOR or install vim, vi or nano")
	ErrEditorLaunch = errors.New("failed to launch editor")
)

var fallbackEditors = []string{"vim", "vi", "nano"}

// Editor runs an external text editor attached to the terminal.
type Editor struct {
	// Configured is the editor from the config file, used when neither $VISUAL nor
	// $EDITOR is set.
	Configured string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	getenv   func(string) string
	lookPath func(string) (string, error)
}

func New(configured string) *Editor {
	return &Editor{
		Configured: configured,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		getenv:     os.Getenv,
		lookPath:   exec.LookPath,
	}
}

// Command returns the editor program and its leading arguments.
func (e *Editor) Command() ([]string, error) {
	for _, candidate := range []string{e.getenv("VISUAL"), e.getenv("EDITOR"), e.Configured} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, name := range fallbackEditors {
		if path, err := e.lookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, ErrNoEditor
}

// Launch opens path in the editor and blocks until the editor exits. A non-zero
// exit status is reported through exitCode, not as an error.
func (e *Editor) Launch(path string) (exitCode int, err error) {
	command, err := e.Command()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(command[0], append(command[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("%w %q: %v", ErrEditorLaunch, command[0], err)
	}
	return 0, nil
}
