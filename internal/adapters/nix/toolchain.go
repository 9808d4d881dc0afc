package nix

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

var _ ports.ToolchainResolver = (*ToolchainResolver)(nil)

// ToolchainResolver implements ports.ToolchainResolver by evaluating the
// fetched toolchain overlay against the index snapshot.
type ToolchainResolver struct {
	system string
}

// NewToolchainResolver creates a resolver targeting the given system.
func NewToolchainResolver(system string) *ToolchainResolver {
	return &ToolchainResolver{system: system}
}

// Resolve evaluates the overlay for a toolchain build matching spec and
// realises it. An unpinned nightly resolves to whatever the overlay carries
// at evaluation time; if the overlay has no matching build, resolution fails
// fatally with no fallback.
func (r *ToolchainResolver) Resolve(
	ctx context.Context,
	spec domain.ToolchainSpec,
	overlay, index domain.FetchedSource,
) (domain.ResolvedToolchain, error) {
	var eval toolchainEval
	evalExpr := toolchainEvalExpr(r.system, spec, overlay, index)
	if err := runJSON(ctx, &eval, "eval", "--json", "--impure", "--expr", evalExpr); err != nil {
		matchErr := zerr.Wrap(err, domain.ErrNoMatchingToolchain.Error())
		matchErr = zerr.With(matchErr, "channel", spec.Channel.String())
		return domain.ResolvedToolchain{}, zerr.With(matchErr, "profile", spec.Profile.String())
	}

	var results buildResults
	buildExpr := toolchainBuildExpr(r.system, spec, overlay, index)
	if err := runJSON(ctx, &results, "build", "--json", "--no-link", "--impure", "--expr", buildExpr); err != nil {
		buildErr := zerr.Wrap(err, domain.ErrNixBuildFailed.Error())
		return domain.ResolvedToolchain{}, zerr.With(buildErr, "toolchain", eval.Version)
	}

	storePath, err := singleOutPath(results)
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.With(err, "toolchain", eval.Version)
	}

	return domain.ResolvedToolchain{
		Spec:       spec,
		Version:    eval.Version,
		StorePath:  storePath,
		Components: eval.Components,
	}, nil
}

// singleOutPath extracts the "out" output of a single-derivation build result.
func singleOutPath(results buildResults) (string, error) {
	if len(results) == 0 {
		return "", zerr.With(domain.ErrNixBuildFailed, "reason", "empty build results")
	}
	out, ok := results[0].Outputs["out"]
	if !ok || out == "" {
		return "", zerr.With(domain.ErrNixBuildFailed, "reason", "no 'out' output in build results")
	}
	return out, nil
}
