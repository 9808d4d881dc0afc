package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/embedder-rs/devshell/internal/adapters/telemetry"
	"github.com/embedder-rs/devshell/internal/app"
	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
	"github.com/embedder-rs/devshell/internal/core/ports/mocks"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
)

type appMocks struct {
	loader    *mocks.MockConfigLoader
	fetcher   *mocks.MockSourceFetcher
	formatter *mocks.MockFormatter
	logger    *mocks.MockLogger

	formatterBinary string
}

func newApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		fetcher:   mocks.NewMockSourceFetcher(ctrl),
		formatter: mocks.NewMockFormatter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	prov := provisioner.New(
		m.fetcher,
		mocks.NewMockToolchainResolver(ctrl),
		mocks.NewMockEngineProvider(ctrl),
		mocks.NewMockShellFactory(ctrl),
		mocks.NewMockHeaderVendorer(ctrl),
		mocks.NewMockLockStore(ctrl),
		telemetry.NewNoOp(),
		m.logger,
	)

	a := app.New(m.loader, prov, func(binary string) ports.Formatter {
		m.formatterBinary = binary
		return m.formatter
	})
	return a, m
}

// minimalManifest supports the current system and declares a single index.
func minimalManifest(t *testing.T) *domain.Manifest {
	t.Helper()
	g := domain.NewGraph()
	require.NoError(t, g.AddSource(domain.PinnedSource{
		Name:  domain.NewInternedString("nixpkgs"),
		Kind:  domain.KindIndex,
		URL:   domain.NewInternedString("github:NixOS/nixpkgs/nixos-24.05"),
		Flake: true,
	}))
	require.NoError(t, g.Validate())
	return &domain.Manifest{
		Version: "1",
		Variant: domain.VariantPackaged,
		Systems: []domain.InternedString{domain.NewInternedString(domain.CurrentSystem())},
		Sources: g,
		Toolchain: domain.ToolchainSpec{
			Channel: domain.NewInternedString("nightly"),
			Date:    domain.NewInternedString("2024-08-20"),
			Profile: domain.NewInternedString("default"),
		},
		Engine: domain.EngineSpec{Package: domain.NewInternedString("flutter-engine")},
	}
}

func TestApp_Provision_LoadFailure(t *testing.T) {
	a, m := newApp(t)
	m.loader.EXPECT().Load(".").Return(nil, errors.New("no manifest here"))

	_, err := a.Provision(context.Background(), provisioner.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
	// Load failures are configuration errors, not provisioning failures.
	assert.False(t, errors.Is(err, domain.ErrProvisionFailed))
}

func TestApp_Provision_FailureWrapsSentinel(t *testing.T) {
	a, m := newApp(t)
	m.loader.EXPECT().Load(".").Return(minimalManifest(t), nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(domain.FetchedSource{}, errors.New("network down")).AnyTimes()

	_, err := a.Provision(context.Background(), provisioner.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProvisionFailed)
	assert.Contains(t, err.Error(), "network down")
}

func TestApp_Format(t *testing.T) {
	t.Run("uses manifest formatter", func(t *testing.T) {
		a, m := newApp(t)
		manifest := minimalManifest(t)
		manifest.Formatter = domain.NewInternedString("nixfmt")
		m.loader.EXPECT().Load(".").Return(manifest, nil)
		m.formatter.EXPECT().Format(gomock.Any(), []string{"--check", "."}).Return(nil)

		require.NoError(t, a.Format(context.Background(), []string{"--check", "."}))
		assert.Equal(t, "nixfmt", m.formatterBinary)
	})

	t.Run("falls back to default formatter", func(t *testing.T) {
		a, m := newApp(t)
		m.loader.EXPECT().Load(".").Return(minimalManifest(t), nil)
		m.formatter.EXPECT().Format(gomock.Any(), gomock.Nil()).Return(nil)

		require.NoError(t, a.Format(context.Background(), nil))
		assert.Equal(t, "alejandra", m.formatterBinary)
	})
}

func TestApp_Vendor_LoadFailure(t *testing.T) {
	a, m := newApp(t)
	m.loader.EXPECT().Load(".").Return(nil, errors.New("no manifest here"))

	_, err := a.Vendor(context.Background(), "")
	require.Error(t, err)
}

func TestApp_Lock(t *testing.T) {
	a, m := newApp(t)
	m.loader.EXPECT().Load(".").Return(nil, errors.New("no manifest here"))

	_, err := a.Lock(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
}
