// Package provisioner implements the single-pass environment provisioning engine.
package provisioner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
)

// Provisioner evaluates the manifest's source graph into a shell environment.
// Each run is independent: there is no retained state between activations
// beyond the lockfile (committed state) and the realisation cache.
type Provisioner struct {
	fetcher   ports.SourceFetcher
	toolchain ports.ToolchainResolver
	engine    ports.EngineProvider
	shells    ports.ShellFactory
	vendorer  ports.HeaderVendorer
	lock      ports.LockStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a Provisioner from its ports.
func New(
	fetcher ports.SourceFetcher,
	toolchain ports.ToolchainResolver,
	engine ports.EngineProvider,
	shells ports.ShellFactory,
	vendorer ports.HeaderVendorer,
	lock ports.LockStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Provisioner {
	return &Provisioner{
		fetcher:   fetcher,
		toolchain: toolchain,
		engine:    engine,
		shells:    shells,
		vendorer:  vendorer,
		lock:      lock,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Options configures a provisioning run.
type Options struct {
	// System is the target system identifier. Empty selects the running
	// process's system.
	System string

	// WorkDir is the directory the header is vendored into. Empty selects
	// the current working directory.
	WorkDir string

	// SkipVendor disables the header copy side effect even for the
	// vendored variant. Used by the drift-check-only operation.
	SkipVendor bool
}

// Provision runs the full single-pass evaluation: fetch every pinned source,
// resolve the toolchain, realise the engine artifact and the shell
// environment, check the lockfile for drift and vendor the embedder header.
//
// Resolution failures are fatal. Drift and a missing engine shared object
// are advisory: they land in the returned Provision, never in the error.
func (p *Provisioner) Provision(ctx context.Context, manifest *domain.Manifest, opts Options) (*domain.Provision, error) {
	system := opts.System
	if system == "" {
		system = domain.CurrentSystem()
	}
	if !manifest.SupportsSystem(system) {
		return nil, zerr.With(domain.ErrUnsupportedSystem, "system", system)
	}

	result := &domain.Provision{}

	if manifest.Toolchain.Channel.String() == "nightly" && !manifest.Toolchain.IsPinned() {
		// Deliberate trade-off carried over from the manifest format: an
		// unpinned nightly resolves to whatever the overlay carries today.
		p.logger.Warn("toolchain channel 'nightly' is unpinned; resolution is not reproducible across days")
	}

	fetched, err := p.fetchSources(ctx, manifest, result)
	if err != nil {
		return nil, err
	}

	index, overlay, engineSrc, err := classifySources(manifest, fetched)
	if err != nil {
		return nil, err
	}

	toolchain, err := p.resolveToolchain(ctx, manifest, overlay, index, result)
	if err != nil {
		return nil, err
	}
	result.Toolchain = toolchain

	engine, err := p.provideEngine(ctx, manifest, *index, engineSrc, result)
	if err != nil {
		return nil, err
	}
	result.Engine = engine

	shell, err := p.realiseShell(ctx, system, manifest, fetched, *index, overlay, toolchain, engine, result)
	if err != nil {
		return nil, err
	}
	result.Shell = shell

	p.checkDrift(ctx, manifest, engine, result)

	if err := p.vendorHeader(ctx, manifest, engineSrc, opts, result); err != nil {
		return nil, err
	}

	return result, nil
}

// fetchSources resolves every pinned source in parallel, bounded by NumCPU.
// Fetches are independent of the Follows edges: layering only matters at
// evaluation time, after all store paths are known.
func (p *Provisioner) fetchSources(ctx context.Context, manifest *domain.Manifest, result *domain.Provision) (map[string]domain.FetchedSource, error) {
	fetched := make(map[string]domain.FetchedSource, manifest.Sources.Len())
	var mu sync.Mutex

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for src := range manifest.Sources.Walk() {
		g.Go(func() error {
			name := src.Name.String()
			vctx, vertex := p.telemetry.Record(groupCtx, domain.StepFetch+":"+name)

			f, err := p.fetcher.Fetch(vctx, src)
			vertex.Complete(err)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to fetch source"), "source", name)
			}

			mu.Lock()
			fetched[name] = f
			result.Steps = append(result.Steps, domain.StepReport{
				Name:   domain.StepFetch + ":" + name,
				Status: domain.StepStatusCompleted,
				Detail: f.StorePath,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetched, nil
}

// classifySources picks the index, optional overlay and optional engine
// source out of the fetched set.
func classifySources(manifest *domain.Manifest, fetched map[string]domain.FetchedSource) (index, overlay, engineSrc *domain.FetchedSource, err error) {
	indexes := manifest.Sources.OfKind(domain.KindIndex)
	if len(indexes) != 1 {
		return nil, nil, nil, zerr.With(zerr.New("manifest must declare exactly one package index"),
			"indexes", len(indexes))
	}
	idx := fetched[indexes[0].Name.String()]
	index = &idx

	if overlays := manifest.Sources.OfKind(domain.KindOverlay); len(overlays) > 0 {
		o := fetched[overlays[0].Name.String()]
		overlay = &o
	}

	if manifest.Vendored() {
		name := manifest.Engine.SourceName.String()
		e, ok := fetched[name]
		if !ok {
			return nil, nil, nil, zerr.With(domain.ErrSourceNotFound, "source_name", name)
		}
		engineSrc = &e
	}

	return index, overlay, engineSrc, nil
}

func (p *Provisioner) resolveToolchain(
	ctx context.Context,
	manifest *domain.Manifest,
	overlay, index *domain.FetchedSource,
	result *domain.Provision,
) (domain.ResolvedToolchain, error) {
	if overlay == nil {
		result.Steps = append(result.Steps, domain.StepReport{
			Name:   domain.StepToolchain,
			Status: domain.StepStatusSkipped,
			Detail: "no toolchain overlay declared",
		})
		return domain.ResolvedToolchain{Spec: manifest.Toolchain}, nil
	}

	vctx, vertex := p.telemetry.Record(ctx, domain.StepToolchain)
	toolchain, err := p.toolchain.Resolve(vctx, manifest.Toolchain, *overlay, *index)
	vertex.Complete(err)
	if err != nil {
		return domain.ResolvedToolchain{}, zerr.Wrap(err, "toolchain resolution failed")
	}

	result.Steps = append(result.Steps, domain.StepReport{
		Name:   domain.StepToolchain,
		Status: domain.StepStatusCompleted,
		Detail: toolchain.Version,
	})
	return toolchain, nil
}

func (p *Provisioner) provideEngine(
	ctx context.Context,
	manifest *domain.Manifest,
	index domain.FetchedSource,
	engineSrc *domain.FetchedSource,
	result *domain.Provision,
) (domain.EngineArtifact, error) {
	vctx, vertex := p.telemetry.Record(ctx, domain.StepEngine)
	engine, err := p.engine.Provide(vctx, manifest, index, engineSrc)
	vertex.Complete(err)
	if err != nil {
		return domain.EngineArtifact{}, zerr.Wrap(err, "engine resolution failed")
	}

	// The downstream build script links against this exact file. Its absence
	// is a warning, not a failure, mirroring the build script's own check.
	so := filepath.Join(engine.LibDir, domain.EngineSharedObject)
	if _, statErr := os.Stat(so); statErr != nil {
		result.Warnings = append(result.Warnings,
			domain.EnvFlutterEngine+" does not contain "+domain.EngineSharedObject+": "+so)
	}

	result.Steps = append(result.Steps, domain.StepReport{
		Name:   domain.StepEngine,
		Status: domain.StepStatusCompleted,
		Detail: engine.Version,
	})
	return engine, nil
}

func (p *Provisioner) realiseShell(
	ctx context.Context,
	system string,
	manifest *domain.Manifest,
	fetched map[string]domain.FetchedSource,
	index domain.FetchedSource,
	overlay *domain.FetchedSource,
	toolchain domain.ResolvedToolchain,
	engine domain.EngineArtifact,
	result *domain.Provision,
) (domain.ShellEnv, error) {
	all := make([]domain.FetchedSource, 0, len(fetched))
	for _, f := range fetched {
		all = append(all, f)
	}
	tools := make([]string, len(manifest.Tools))
	for i, t := range manifest.Tools {
		tools[i] = t.String()
	}

	req := domain.ShellRequest{
		ID:        domain.GenerateShellID(all, toolchain.Version, tools),
		System:    system,
		Index:     index,
		Overlay:   overlay,
		Toolchain: toolchain,
		Tools:     tools,
		Engine:    engine,
	}

	vctx, vertex := p.telemetry.Record(ctx, domain.StepShell)
	shell, err := p.shells.Realise(vctx, req)
	vertex.Complete(err)
	if err != nil {
		return domain.ShellEnv{}, zerr.Wrap(err, "shell realisation failed")
	}

	result.Steps = append(result.Steps, domain.StepReport{
		Name:   domain.StepShell,
		Status: domain.StepStatusCompleted,
		Detail: shell.ID,
	})
	return shell, nil
}

// checkDrift compares the engine version against the lockfile record.
// Advisory only: failures to read the lockfile and drift itself both land in
// the result, never in an error.
func (p *Provisioner) checkDrift(ctx context.Context, manifest *domain.Manifest, engine domain.EngineArtifact, result *domain.Provision) {
	if !manifest.Vendored() {
		result.Steps = append(result.Steps, domain.StepReport{
			Name:   domain.StepDrift,
			Status: domain.StepStatusSkipped,
			Detail: "packaged variant",
		})
		return
	}

	// Lockfile bookkeeping, not user-visible work: the vertex stays off the
	// progress display.
	_, vertex := p.telemetry.Record(ctx, domain.StepDrift, ports.WithInternal())

	lockfile, err := p.lock.Read()
	if err != nil {
		vertex.Complete(err)
		result.Warnings = append(result.Warnings, "could not read lockfile: "+err.Error())
		result.Steps = append(result.Steps, domain.StepReport{
			Name:   domain.StepDrift,
			Status: domain.StepStatusSkipped,
			Detail: "lockfile unreadable",
		})
		return
	}

	if _, err := lockfile.Record(domain.EngineLockEntry); err != nil {
		vertex.Complete(nil)
		result.Warnings = append(result.Warnings,
			"lockfile has no record for "+domain.EngineLockEntry+"; run 'devshell lock' to create one")
		result.Steps = append(result.Steps, domain.StepReport{
			Name:   domain.StepDrift,
			Status: domain.StepStatusSkipped,
			Detail: "no lockfile record",
		})
		return
	}

	result.Drift = lockfile.CheckDrift(domain.EngineLockEntry, engine.Version)
	vertex.Complete(nil)
	result.Steps = append(result.Steps, domain.StepReport{
		Name:   domain.StepDrift,
		Status: domain.StepStatusCompleted,
	})
}

// vendorHeader performs the header copy side effect. A copy failure is fatal
// to the run, matching the shell-hook semantics it replaces.
func (p *Provisioner) vendorHeader(
	ctx context.Context,
	manifest *domain.Manifest,
	engineSrc *domain.FetchedSource,
	opts Options,
	result *domain.Provision,
) error {
	if !manifest.Vendored() || !manifest.Engine.VendorHeader || opts.SkipVendor {
		result.Steps = append(result.Steps, domain.StepReport{
			Name:   domain.StepVendor,
			Status: domain.StepStatusSkipped,
		})
		return nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	vctx, vertex := p.telemetry.Record(ctx, domain.StepVendor)
	dest, err := p.vendorer.Vendor(vctx, engineSrc.StorePath, workDir)
	vertex.Complete(err)
	if err != nil {
		return zerr.Wrap(err, "header vendoring failed")
	}

	result.VendoredHeader = dest
	result.Steps = append(result.Steps, domain.StepReport{
		Name:   domain.StepVendor,
		Status: domain.StepStatusCompleted,
		Detail: dest,
	})
	return nil
}

// VendorOnly fetches just the pinned engine source and vendors the header,
// without realising the rest of the environment.
func (p *Provisioner) VendorOnly(ctx context.Context, manifest *domain.Manifest, workDir string) (string, error) {
	if !manifest.Vendored() {
		return "", zerr.New("manifest does not use the vendored engine variant")
	}
	if workDir == "" {
		workDir = "."
	}

	src, err := manifest.Sources.Get(manifest.Engine.SourceName)
	if err != nil {
		return "", err
	}

	name := src.Name.String()
	fctx, fetchVertex := p.telemetry.Record(ctx, domain.StepFetch+":"+name)
	fetched, err := p.fetcher.Fetch(fctx, src)
	fetchVertex.Complete(err)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to fetch source"), "source", name)
	}

	vctx, vendorVertex := p.telemetry.Record(ctx, domain.StepVendor)
	dest, err := p.vendorer.Vendor(vctx, fetched.StorePath, workDir)
	vendorVertex.Complete(err)
	if err != nil {
		return "", zerr.Wrap(err, "header vendoring failed")
	}
	return dest, nil
}

// Lock refreshes the lockfile from a fresh resolution of every pinned
// source. The engine entry records the declared ref so the drift check
// compares against the operator's intent, not a previous resolution.
func (p *Provisioner) Lock(ctx context.Context, manifest *domain.Manifest) (*domain.Lockfile, error) {
	result := &domain.Provision{}
	fetched, err := p.fetchSources(ctx, manifest, result)
	if err != nil {
		return nil, err
	}

	lockfile := &domain.Lockfile{
		Version: 1,
		Records: make(map[string]domain.LockRecord, len(fetched)),
	}
	now := time.Now().UTC()

	for name, f := range fetched {
		ref := f.Source.Ref.String()
		if ref == "" {
			ref = f.ResolvedRev
		}
		entry := name
		if manifest.Vendored() && name == manifest.Engine.SourceName.String() {
			entry = domain.EngineLockEntry
		}
		lockfile.Records[entry] = domain.LockRecord{
			Ref:         ref,
			ResolvedRev: f.ResolvedRev,
			NarHash:     f.NarHash,
			Timestamp:   now,
		}
	}

	if err := p.lock.Write(lockfile); err != nil {
		return nil, zerr.Wrap(err, "failed to write lockfile")
	}
	return lockfile, nil
}
