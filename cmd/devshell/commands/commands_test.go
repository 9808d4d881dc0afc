package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/embedder-rs/devshell/cmd/devshell/commands"
	"github.com/embedder-rs/devshell/internal/adapters/telemetry"
	"github.com/embedder-rs/devshell/internal/app"
	"github.com/embedder-rs/devshell/internal/build"
	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
	"github.com/embedder-rs/devshell/internal/core/ports/mocks"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
)

type cliMocks struct {
	loader    *mocks.MockConfigLoader
	fetcher   *mocks.MockSourceFetcher
	toolchain *mocks.MockToolchainResolver
	engine    *mocks.MockEngineProvider
	shells    *mocks.MockShellFactory
	vendorer  *mocks.MockHeaderVendorer
	lock      *mocks.MockLockStore
	formatter *mocks.MockFormatter
	logger    *mocks.MockLogger
}

func newCLI(t *testing.T) (*commands.CLI, *cliMocks, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &cliMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		fetcher:   mocks.NewMockSourceFetcher(ctrl),
		toolchain: mocks.NewMockToolchainResolver(ctrl),
		engine:    mocks.NewMockEngineProvider(ctrl),
		shells:    mocks.NewMockShellFactory(ctrl),
		vendorer:  mocks.NewMockHeaderVendorer(ctrl),
		lock:      mocks.NewMockLockStore(ctrl),
		formatter: mocks.NewMockFormatter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	prov := provisioner.New(
		m.fetcher, m.toolchain, m.engine, m.shells, m.vendorer, m.lock,
		telemetry.NewNoOp(), m.logger,
	)
	a := app.New(m.loader, prov, func(_ string) ports.Formatter { return m.formatter })

	cli := commands.New(a, m.logger)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	return cli, m, out
}

func testManifest(t *testing.T) *domain.Manifest {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.AddSource(domain.PinnedSource{
		Name:  domain.NewInternedString("nixpkgs"),
		Kind:  domain.KindIndex,
		URL:   domain.NewInternedString("github:NixOS/nixpkgs/nixos-24.05"),
		Flake: true,
	}))
	require.NoError(t, g.AddSource(domain.PinnedSource{
		Name: domain.NewInternedString("engine"),
		Kind: domain.KindSource,
		URL:  domain.NewInternedString("github:flutter/engine"),
		Ref:  domain.NewInternedString("3.24.0"),
	}))
	require.NoError(t, g.Validate())
	return &domain.Manifest{
		Version: "1",
		Variant: domain.VariantVendored,
		Systems: []domain.InternedString{domain.NewInternedString(domain.CurrentSystem())},
		Sources: g,
		Toolchain: domain.ToolchainSpec{
			Channel: domain.NewInternedString("nightly"),
			Date:    domain.NewInternedString("2024-08-20"),
			Profile: domain.NewInternedString("default"),
		},
		Engine: domain.EngineSpec{
			SourceName:   domain.NewInternedString("engine"),
			Package:      domain.NewInternedString("flutter-engine"),
			VendorHeader: true,
		},
		Formatter: domain.NewInternedString("alejandra"),
	}
}

func expectHappyProvision(t *testing.T, m *cliMocks) string {
	t.Helper()
	libDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(libDir, domain.EngineSharedObject), []byte("elf"), 0o644))

	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src domain.PinnedSource) (domain.FetchedSource, error) {
			return domain.FetchedSource{Source: src, StorePath: "/nix/store/aaaa-" + src.Name.String()}, nil
		}).Times(2)
	m.engine.EXPECT().Provide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.EngineArtifact{Version: "3.24.0", LibDir: libDir}, nil)
	m.shells.EXPECT().Realise(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.ShellRequest) (domain.ShellEnv, error) {
			return domain.ShellEnv{
				ID: req.ID,
				Vars: []domain.EnvVar{
					{Key: domain.EnvFlutterEngine, Value: libDir},
					{Key: domain.EnvLibclangPath, Value: "/nix/store/clang/lib"},
				},
			}, nil
		})
	m.lock.EXPECT().Read().Return(&domain.Lockfile{
		Version: 1,
		Records: map[string]domain.LockRecord{domain.EngineLockEntry: {Ref: "3.24.0"}},
	}, nil)
	return libDir
}

func TestCommands_Version(t *testing.T) {
	cli, _, out := newCLI(t)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), build.Version)
}

func TestCommands_Provision(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	libDir := expectHappyProvision(t, m)
	m.vendorer.EXPECT().Vendor(gomock.Any(), "/nix/store/aaaa-engine", gomock.Any()).
		Return("/work/embedder.h", nil)

	cli.SetArgs([]string{"provision"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), domain.EnvFlutterEngine+"="+libDir)
	assert.Contains(t, out.String(), domain.EnvLibclangPath+"=/nix/store/clang/lib")
}

func TestCommands_Provision_Export(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	libDir := expectHappyProvision(t, m)
	m.vendorer.EXPECT().Vendor(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/work/embedder.h", nil)

	cli.SetArgs([]string{"provision", "--export"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "export "+domain.EnvFlutterEngine+"=\""+libDir+"\"")
}

func TestCommands_Provision_NoVendor(t *testing.T) {
	cli, m, _ := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	expectHappyProvision(t, m)
	// No vendorer expectation: --no-vendor must suppress the copy.

	cli.SetArgs([]string{"provision", "--no-vendor"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestCommands_Check(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	expectHappyProvision(t, m)

	cli.SetArgs([]string{"check"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "engine version matches the lockfile")
}

// expectDriftedProvision wires a happy resolution whose engine version no
// longer matches the locked reference.
func expectDriftedProvision(t *testing.T, m *cliMocks) {
	t.Helper()
	libDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(libDir, domain.EngineSharedObject), []byte("elf"), 0o644))

	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src domain.PinnedSource) (domain.FetchedSource, error) {
			return domain.FetchedSource{Source: src, StorePath: "/nix/store/aaaa-" + src.Name.String()}, nil
		}).Times(2)
	m.engine.EXPECT().Provide(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.EngineArtifact{Version: "3.27.1", LibDir: libDir}, nil)
	m.shells.EXPECT().Realise(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.ShellRequest) (domain.ShellEnv, error) {
			return domain.ShellEnv{
				ID:   req.ID,
				Vars: []domain.EnvVar{{Key: domain.EnvFlutterEngine, Value: libDir}},
			}, nil
		})
	m.lock.EXPECT().Read().Return(&domain.Lockfile{
		Version: 1,
		Records: map[string]domain.LockRecord{domain.EngineLockEntry: {Ref: "3.24.0"}},
	}, nil)
}

func TestCommands_Provision_DriftWarning(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	expectDriftedProvision(t, m)
	m.vendorer.EXPECT().Vendor(gomock.Any(), "/nix/store/aaaa-engine", gomock.Any()).
		Return("/work/embedder.h", nil)

	cli.SetArgs([]string{"provision"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "version drift detected for "+domain.EngineLockEntry)
	assert.Contains(t, out.String(), "3.24.0")
	assert.Contains(t, out.String(), "3.27.1")
}

func TestCommands_Check_Drift(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	expectDriftedProvision(t, m)

	cli.SetArgs([]string{"check"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "version drift detected for "+domain.EngineLockEntry)
	assert.Contains(t, out.String(), "3.24.0")
	assert.Contains(t, out.String(), "3.27.1")
	assert.NotContains(t, out.String(), "engine version matches the lockfile")
}

func TestCommands_Vendor(t *testing.T) {
	cli, m, _ := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src domain.PinnedSource) (domain.FetchedSource, error) {
			return domain.FetchedSource{Source: src, StorePath: "/nix/store/aaaa-engine"}, nil
		})
	m.vendorer.EXPECT().Vendor(gomock.Any(), "/nix/store/aaaa-engine", "/tmp/work").
		Return("/tmp/work/embedder.h", nil)
	m.logger.EXPECT().Info("vendored /tmp/work/embedder.h")

	cli.SetArgs([]string{"vendor", "--dir", "/tmp/work"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestCommands_Lock(t *testing.T) {
	cli, m, out := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, src domain.PinnedSource) (domain.FetchedSource, error) {
			return domain.FetchedSource{Source: src, StorePath: "/nix/store/aaaa-" + src.Name.String()}, nil
		}).Times(2)
	m.lock.EXPECT().Write(gomock.Any()).Return(nil)

	cli.SetArgs([]string{"lock"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "locked 2 inputs")
}

func TestCommands_Fmt_PassThrough(t *testing.T) {
	cli, m, _ := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	// Flag-looking arguments are forwarded untouched.
	m.formatter.EXPECT().Format(gomock.Any(), []string{"--check", "-q", "flake.nix"}).Return(nil)

	cli.SetArgs([]string{"fmt", "--check", "-q", "flake.nix"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestCommands_Provision_Failure(t *testing.T) {
	cli, m, _ := newCLI(t)
	m.loader.EXPECT().Load(".").Return(testManifest(t), nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(domain.FetchedSource{}, errors.New("prefetch failed")).AnyTimes()

	cli.SetArgs([]string{"provision"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvisionFailed)
}
