package nix

import (
	"context"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

var _ ports.EngineProvider = (*EngineProvider)(nil)

// EngineProvider implements ports.EngineProvider against the index's
// packaged engine. Both variants take the prebuilt artifact from the index;
// the pinned engine source (when present) contributes only the vendored
// header and the drift comparison target.
type EngineProvider struct {
	system string
}

// NewEngineProvider creates a provider targeting the given system.
func NewEngineProvider(system string) *EngineProvider {
	return &EngineProvider{system: system}
}

// Provide realises the engine package and returns its release output
// directory along with the version string used by the drift check.
func (p *EngineProvider) Provide(
	ctx context.Context,
	manifest *domain.Manifest,
	index domain.FetchedSource,
	_ *domain.FetchedSource,
) (domain.EngineArtifact, error) {
	attrPath := manifest.Engine.Package.String()
	if attrPath == "" {
		attrPath = domain.EngineLockEntry
	}
	expr := engineExpr(p.system, attrPath, index)

	var version string
	if err := runJSON(ctx, &version, "eval", "--json", "--impure", "--expr", expr+".version"); err != nil {
		evalErr := zerr.Wrap(err, domain.ErrNixBuildFailed.Error())
		return domain.EngineArtifact{}, zerr.With(evalErr, "package", attrPath)
	}

	var results buildResults
	if err := runJSON(ctx, &results, "build", "--json", "--no-link", "--impure", "--expr", expr); err != nil {
		buildErr := zerr.Wrap(err, domain.ErrNixBuildFailed.Error())
		return domain.EngineArtifact{}, zerr.With(buildErr, "package", attrPath)
	}

	storePath, err := singleOutPath(results)
	if err != nil {
		return domain.EngineArtifact{}, zerr.With(err, "package", attrPath)
	}

	return domain.EngineArtifact{
		Version:   version,
		StorePath: storePath,
		LibDir:    filepath.Join(storePath, "lib"),
	}, nil
}
