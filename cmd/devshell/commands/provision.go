package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
	"github.com/embedder-rs/devshell/internal/ui/output"
	"github.com/embedder-rs/devshell/internal/ui/style"
	"github.com/embedder-rs/devshell/internal/ui/warn"
)

func (c *CLI) newProvisionCmd() *cobra.Command {
	var (
		system   string
		workDir  string
		noVendor bool
		export   bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Resolve pinned sources and print the shell environment",
		Long: "Provision fetches every pinned source, resolves the toolchain, realises\n" +
			"the engine artifact and prints the resulting environment bindings to\n" +
			"stdout. Advisory findings (version drift, missing engine library) go to\n" +
			"stderr and never fail the run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Provision(cmd.Context(), provisioner.Options{
				System:     system,
				WorkDir:    workDir,
				SkipVendor: noVendor,
			})
			if err != nil {
				return err
			}

			reportFindings(errOutput(cmd), result, c)
			printEnv(cmd.OutOrStdout(), result.Shell, export)
			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "Target system (defaults to the current system)")
	cmd.Flags().StringVar(&workDir, "dir", "", "Directory the header is vendored into (defaults to the working directory)")
	cmd.Flags().BoolVar(&noVendor, "no-vendor", false, "Skip the embedder header copy")
	cmd.Flags().BoolVar(&export, "export", false, "Print POSIX export statements instead of KEY=VALUE lines")

	return cmd
}

// errOutput wraps the command's error stream in a profile-aware terminal
// output and binds the styling layer to the detected color profile. NO_COLOR
// yields plain text.
func errOutput(cmd *cobra.Command) io.Writer {
	out := output.New(cmd.ErrOrStderr())
	lipgloss.SetColorProfile(out.Profile)
	return out
}

// printEnv writes the environment bindings to w, sorted by key.
func printEnv(w io.Writer, shell domain.ShellEnv, export bool) {
	for _, v := range shell.Vars {
		if export {
			fmt.Fprintf(w, "export %s=%q\n", v.Key, v.Value)
		} else {
			fmt.Fprintf(w, "%s=%s\n", v.Key, v.Value)
		}
	}
}

// reportFindings prints the step summary and advisory findings to w.
func reportFindings(w io.Writer, result *domain.Provision, c *CLI) {
	for _, step := range result.Steps {
		fmt.Fprintf(w, "%s %s", stepIcon(step.Status), step.Name)
		if step.Detail != "" {
			fmt.Fprintf(w, " (%s)", step.Detail)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range result.Warnings {
		c.logger.Warn(warning)
	}

	if result.Drift != nil {
		warn.PrintDrift(w, result.Drift)
	}
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(style.Green)
	failStyle = lipgloss.NewStyle().Foreground(style.Red)
	skipStyle = lipgloss.NewStyle().Foreground(style.Slate)
)

func stepIcon(status domain.StepStatus) string {
	switch status {
	case domain.StepStatusCompleted:
		return okStyle.Render(style.Check)
	case domain.StepStatusCached:
		return okStyle.Render(style.Dot)
	case domain.StepStatusFailed:
		return failStyle.Render(style.Cross)
	case domain.StepStatusSkipped:
		return skipStyle.Render(style.Circle)
	default:
		return skipStyle.Render(style.Circle)
	}
}
