package nix

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/ports"
)

// experimentalFeatures is passed on every invocation so the adapter works on
// installations that have not enabled flakes globally.
var experimentalFeatures = []string{
	"--extra-experimental-features", "nix-command flakes",
}

// runJSON executes the Nix CLI with the given arguments and unmarshals its
// stdout into out. Stderr is streamed to the telemetry vertex when one is
// attached to the context, and captured into the returned error otherwise.
func runJSON(ctx context.Context, out any, args ...string) error {
	full := append(append([]string{}, experimentalFeatures...), args...)

	//nolint:gosec // arguments are constructed from validated manifest inputs
	cmd := exec.CommandContext(ctx, "nix", full...)
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = v.Stderr()
	}

	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		nixErr := zerr.Wrap(err, "nix command failed")
		nixErr = zerr.With(nixErr, "args", strings.Join(args, " "))
		return zerr.With(nixErr, "stderr", stderr)
	}

	if err := json.Unmarshal(output, out); err != nil {
		parseErr := zerr.Wrap(err, "failed to parse nix JSON output")
		return zerr.With(parseErr, "output", string(output))
	}
	return nil
}
