// Package config provides the manifest loader for devshell.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// DefaultFilename is the manifest filename looked up in the working directory.
const DefaultFilename = "devshell.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader reading the default manifest filename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the manifest from the given working directory.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a manifest file from the given path and returns a validated
// domain.Manifest with its source graph topologically checked.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var file Shellfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	return build(&file)
}

func build(file *Shellfile) (*domain.Manifest, error) {
	systems, err := validateSystems(file.Systems)
	if err != nil {
		return nil, err
	}

	graph := domain.NewGraph()
	for name, dto := range file.Inputs {
		src, err := buildSource(name, dto, file.Inputs)
		if err != nil {
			return nil, err
		}
		if err := graph.AddSource(src); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, zerr.Wrap(err, "invalid source graph")
	}

	if len(graph.OfKind(domain.KindIndex)) != 1 {
		return nil, zerr.With(zerr.New("manifest must declare exactly one package index input"),
			"indexes", len(graph.OfKind(domain.KindIndex)))
	}

	variant, err := resolveVariant(file)
	if err != nil {
		return nil, err
	}

	if variant == domain.VariantVendored {
		if _, err := graph.Get(domain.NewInternedString(file.Engine.Source)); err != nil {
			return nil, zerr.Wrap(err, "engine source is not a declared input")
		}
	}

	m := &domain.Manifest{
		Version:   file.Version,
		Variant:   variant,
		Systems:   internStrings(systems),
		Sources:   graph,
		Toolchain: buildToolchain(file.Toolchain),
		Tools:     internStrings(canonicalizeStrings(file.Tools)),
		Engine: domain.EngineSpec{
			SourceName:   domain.NewInternedString(file.Engine.Source),
			Package:      domain.NewInternedString(file.Engine.Package),
			VendorHeader: file.Engine.VendorHeader,
		},
		Formatter: domain.NewInternedString(file.Formatter),
	}
	return m, nil
}

func buildSource(name string, dto InputDTO, all map[string]InputDTO) (domain.PinnedSource, error) {
	if dto.URL == "" {
		return domain.PinnedSource{}, zerr.With(zerr.New("input is missing a url"), "input", name)
	}

	for _, follows := range dto.Follows {
		if _, ok := all[follows]; !ok {
			return domain.PinnedSource{}, zerr.With(zerr.With(domain.ErrMissingSource,
				"input", name), "follows", follows)
		}
	}

	flake := dto.Flake == nil || *dto.Flake

	kind, err := sourceKind(dto, flake)
	if err != nil {
		return domain.PinnedSource{}, zerr.With(err, "input", name)
	}

	return domain.PinnedSource{
		Name:    domain.NewInternedString(name),
		Kind:    kind,
		URL:     domain.NewInternedString(dto.URL),
		Ref:     domain.NewInternedString(dto.Ref),
		Flake:   flake,
		Follows: internStrings(dto.Follows),
	}, nil
}

// sourceKind determines the source kind. An explicit kind wins; otherwise a
// flake-disabled checkout is a plain source, an input with follows edges is
// an overlay, and everything else is a package index.
func sourceKind(dto InputDTO, flake bool) (domain.SourceKind, error) {
	switch dto.Kind {
	case "":
	case string(domain.KindIndex):
		return domain.KindIndex, nil
	case string(domain.KindOverlay):
		return domain.KindOverlay, nil
	case string(domain.KindSource):
		return domain.KindSource, nil
	default:
		return "", zerr.With(zerr.New("unknown input kind"), "kind", dto.Kind)
	}

	if !flake {
		return domain.KindSource, nil
	}
	if len(dto.Follows) > 0 {
		return domain.KindOverlay, nil
	}
	return domain.KindIndex, nil
}

// validateSystems rejects anything outside the Linux system set: the
// supported platforms are the ecosystem's platforms intersected with the
// Linux ones.
func validateSystems(systems []string) ([]string, error) {
	if len(systems) == 0 {
		return nil, zerr.New("manifest must declare at least one system")
	}
	out := canonicalizeStrings(systems)
	for _, s := range out {
		if !strings.HasSuffix(s, "-linux") {
			return nil, zerr.With(domain.ErrUnsupportedSystem, "system", s)
		}
	}
	return out, nil
}

func resolveVariant(file *Shellfile) (domain.Variant, error) {
	switch file.Variant {
	case string(domain.VariantVendored):
		return domain.VariantVendored, nil
	case string(domain.VariantPackaged):
		return domain.VariantPackaged, nil
	case "":
		// Infer from the engine configuration: a declared engine source
		// means the vendored flavour.
		if file.Engine.Source != "" {
			return domain.VariantVendored, nil
		}
		return domain.VariantPackaged, nil
	default:
		return "", zerr.With(zerr.New("unknown variant"), "variant", file.Variant)
	}
}

func buildToolchain(dto ToolchainDTO) domain.ToolchainSpec {
	channel := dto.Channel
	if channel == "" {
		channel = "nightly"
	}
	profile := dto.Profile
	if profile == "" {
		profile = "default"
	}
	return domain.ToolchainSpec{
		Channel:    domain.NewInternedString(channel),
		Date:       domain.NewInternedString(dto.Date),
		Profile:    domain.NewInternedString(profile),
		Components: internStrings(canonicalizeStrings(dto.Components)),
	}
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
