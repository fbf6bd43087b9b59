package commands

import (
	"github.com/spf13/cobra"
	"github.com/vestigehq/vestige/internal/app"
	"github.com/vestigehq/vestige/internal/core/domain"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <dump> [operations...]",
		Short: "Run analysis operations against a memory dump",
		Long: `Run one or more analysis operations against a memory dump.

Operations: pslist, cmdline, dlllist, netscan, malfind.
Results are cached per operation; repeating an analysis against an
unchanged dump is served from cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			watch, _ := cmd.Flags().GetBool("watch")

			var ops []domain.OperationType
			switch {
			case all:
				ops = domain.Operations()
			case len(args) < 2:
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			default:
				for _, name := range args[1:] {
					op, err := domain.ParseOperation(name)
					if err != nil {
						return err
					}
					ops = append(ops, op)
				}
			}

			opts := app.AnalyzeOptions{Operations: ops, Watch: watch}
			if cmd.Flags().Changed("pid") {
				pid, _ := cmd.Flags().GetUint32("pid")
				opts.PID = &pid
			}

			reports, err := c.app.Analyze(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, report := range reports {
				renderReport(out, report)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Run every analysis operation")
	cmd.Flags().Uint32P("pid", "p", 0, "Restrict the analysis to one process ID")
	cmd.Flags().BoolP("watch", "w", false, "Watch the dump and invalidate cached results when it changes")
	return cmd
}
