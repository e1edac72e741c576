package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ErrUsage is returned when focus is run without a command; usage has already
// been printed.
var ErrUsage = errors.New("no command given")

func NewRootCommand(build Builder) *cobra.Command {
	var opts Options
	rt := &Runtime{}

	rootCmd := &cobra.Command{
		Use:   "focus",
		Short: "Block distracting websites while you work",
		Long: "Focus blocks the domains listed in ~/.focus/domains.txt by redirecting them to the\n" +
			"loopback address in the system hosts file. Changing the hosts file usually needs sudo.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          unknownCommand,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.HasParent() {
				return nil
			}
			built, err := build(opts)
			if err != nil {
				return err
			}
			*rt = *built
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Usage()
			return ErrUsage
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.focus/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.HostsFile, "hosts-file", "", "hosts file to modify (default /etc/hosts)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug output")

	rootCmd.AddCommand(
		NewOnCommand(rt),
		NewOffCommand(rt),
		NewEditCommand(rt),
		NewStatusCommand(rt),
	)

	return rootCmd
}

// unknownCommand rejects a verb focus does not know and lists the ones it does.
func unknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd.Usage()
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += "; did you mean " + strings.Join(suggestions, ", ") + "?"
	}
	return errors.New(msg)
}
