package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the analysis result caches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show per-operation cache statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			renderStats(cmd.OutOrStdout(), c.app.CacheStats())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty every cache and reset all statistics",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			c.app.ClearCaches()
		},
	})

	return cmd
}
