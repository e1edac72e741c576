package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gajzzs/focus/internal/app"
)

func main() {
	rootCmd := app.NewRootCommand(app.NewRuntime)
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, app.ErrUsage):
		case errors.Is(err, fs.ErrPermission):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Permission denied. Try running with sudo:")
			fmt.Fprintln(os.Stderr, "  sudo focus on")
			fmt.Fprintln(os.Stderr, "  sudo focus off")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
