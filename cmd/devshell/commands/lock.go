package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Refresh the lockfile from a fresh resolution of all inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lockfile, err := c.app.Lock(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "locked %d inputs\n", len(lockfile.Records))
			return nil
		},
	}
}
