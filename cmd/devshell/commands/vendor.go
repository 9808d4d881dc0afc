package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVendorCmd() *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Copy the embedder header into the working directory",
		Long: "Vendor fetches the pinned engine source and copies\n" +
			"shell/platform/embedder/embedder.h into the working directory,\n" +
			"overwriting any existing embedder.h unconditionally.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, err := c.app.Vendor(cmd.Context(), workDir)
			if err != nil {
				return err
			}
			c.logger.Info("vendored " + dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&workDir, "dir", "", "Destination directory (defaults to the working directory)")
	return cmd
}
