package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [args...]",
		Short: "Run the manifest's formatter",
		Long: "Fmt is a pure pass-through to the formatter binary named by the\n" +
			"manifest. All arguments are forwarded unchanged.",
		// Forward everything, including flag-looking arguments.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Format(cmd.Context(), args)
		},
	}
}
