package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embedder-rs/devshell/internal/ui/style"
	"github.com/embedder-rs/devshell/internal/ui/warn"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the engine version against the lockfile",
		Long: "Check resolves the engine package and compares its version against\n" +
			"the lockfile record. Drift is advisory: the command reports it and\n" +
			"exits successfully either way.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Check(cmd.Context())
			if err != nil {
				return err
			}

			for _, warning := range result.Warnings {
				c.logger.Warn(warning)
			}

			if result.Drift != nil {
				warn.PrintDrift(errOutput(cmd), result.Drift)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s engine version matches the lockfile (%s)\n",
				okStyle.Render(style.Check), result.Engine.Version)
			return nil
		},
	}
}
