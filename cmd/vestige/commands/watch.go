package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage invalidation watches on dump files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <dump>...",
		Short: "Start watching dump files for changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, path := range args {
				if err := c.app.WatchDump(path); err != nil {
					return err
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <dump>...",
		Short: "Stop watching dump files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			for _, path := range args {
				c.app.UnwatchDump(path)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List watched dump files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, path := range c.app.WatchedDumps() {
				_, _ = fmt.Fprintln(out, path)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Recheck every watched dump now and invalidate stale results",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if c.app.ValidateWatched() {
				_, _ = fmt.Fprintln(out, "all watched dumps unchanged")
				return
			}
			_, _ = fmt.Fprintln(out, "stale results invalidated")
		},
	})

	return cmd
}
