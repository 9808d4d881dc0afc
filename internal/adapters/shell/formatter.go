// Package shell provides the formatter pass-through adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/ports"
)

var _ ports.Formatter = (*Formatter)(nil)

// Formatter implements ports.Formatter as a pure pass-through to an external
// formatter binary. There is no custom behavior: arguments are forwarded
// unchanged and the binary's exit status is surfaced as the error.
type Formatter struct {
	binary string
	logger ports.Logger

	// env optionally overrides the process environment, used when the
	// formatter should run inside a provisioned shell's PATH.
	env []string
}

// NewFormatter creates a Formatter invoking the given binary.
func NewFormatter(binary string, logger ports.Logger) *Formatter {
	return &Formatter{binary: binary, logger: logger}
}

// WithEnv returns a copy of the formatter that resolves and runs the binary
// against the given environment instead of the process environment.
func (f *Formatter) WithEnv(env []string) *Formatter {
	clone := *f
	clone.env = env
	return &clone
}

// Format runs the formatter with the given arguments in the working directory.
func (f *Formatter) Format(ctx context.Context, args []string) error {
	env := f.env
	if env == nil {
		env = os.Environ()
	}

	executable := f.binary
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // formatter binary comes from the manifest
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	f.logger.Info("running formatter: " + f.binary)

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		fmtErr := zerr.Wrap(err, "formatter failed")
		fmtErr = zerr.With(fmtErr, "binary", f.binary)
		return zerr.With(fmtErr, "exit_code", exitCode)
	}
	return nil
}

// lookPath resolves a binary name against the PATH of the given environment
// rather than the process environment.
func lookPath(name string, env []string) (string, error) {
	var pathVal string
	for _, entry := range env {
		if k, v, ok := strings.Cut(entry, "="); ok && k == "PATH" {
			pathVal = v
			break
		}
	}

	for dir := range strings.SplitSeq(pathVal, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}
