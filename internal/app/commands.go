package app

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gajzzs/focus/internal/system"
)

func NewOnCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "on",
		Short: "Enable focus mode - block all configured domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := rt.BlockList.Ensure(); err != nil {
				return err
			}
			domains, err := rt.BlockList.Load()
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				fmt.Fprintln(out, "No domains configured. Run 'focus edit' to add domains.")
				return nil
			}

			if err := rt.Hosts.Enable(domains); err != nil {
				return err
			}
			rt.Flusher.Flush()

			rt.Logger.WithFields(logrus.Fields{
				"hosts_file": rt.Hosts.Path,
				"domains":    len(domains),
			}).Info("focus mode enabled")

			fmt.Fprintf(out, "Focus mode activated. Blocked %d domains:\n", len(domains))
			for _, domain := range domains {
				fmt.Fprintf(out, "  - %s\n", domain)
			}
			return nil
		},
	}
}

func NewOffCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "off",
		Short: "Disable focus mode - unblock all domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			active, err := rt.Hosts.Active()
			if err != nil {
				return err
			}
			if !active {
				fmt.Fprintln(out, "Focus mode is not active.")
				return nil
			}

			if err := rt.Hosts.Disable(); err != nil {
				return err
			}
			rt.Flusher.Flush()

			rt.Logger.WithField("hosts_file", rt.Hosts.Path).Info("focus mode disabled")
			fmt.Fprintln(out, "Focus mode deactivated. All sites unblocked.")
			return nil
		},
	}
}

func NewEditCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the list of blocked domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := rt.BlockList.Path()

			if _, err := rt.BlockList.Ensure(); err != nil {
				return err
			}

			code, err := rt.Editor.Launch(path)
			if err != nil {
				return err
			}
			if code != 0 {
				rt.Logger.Warnf("editor exited with status %d", code)
			}
			rt.Logger.WithField("path", path).Info("block-list edited")

			fmt.Fprintln(out, "Domains file saved. Changes will apply next time you run 'focus on'.")
			if active, err := rt.Hosts.Active(); err == nil && active {
				fmt.Fprintln(out, "Tip: Run 'focus on' again to apply changes immediately.")
			}
			return nil
		},
	}
}

func NewStatusCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current status and blocked domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			active, err := rt.Hosts.Active()
			if err != nil {
				return err
			}
			if active {
				fmt.Fprintln(out, "Focus mode: ACTIVE")
			} else {
				fmt.Fprintln(out, "Focus mode: INACTIVE")
			}
			fmt.Fprintf(out, "Hosts file: %s\n", rt.Hosts.Path)
			if platform, err := system.Platform(); err == nil {
				fmt.Fprintf(out, "Platform: %s\n", platform)
			}
			if !system.IsElevated() {
				fmt.Fprintln(out, "Note: 'focus on' and 'focus off' usually need sudo.")
			}

			if _, err := rt.BlockList.Ensure(); err != nil {
				return err
			}
			domains, err := rt.BlockList.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nConfigured domains (%s):\n", rt.BlockList.Path())
			if len(domains) == 0 {
				fmt.Fprintln(out, "  (none configured)")
			}
			for _, domain := range domains {
				fmt.Fprintf(out, "  - %s\n", domain)
			}

			if active {
				entries, err := rt.Hosts.Entries()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nHosts entries (%d):\n", len(entries))
				for _, entry := range entries {
					fmt.Fprintf(out, "  %s\n", entry)
				}
			}
			return nil
		},
	}
}
