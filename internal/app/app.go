// Package app implements the application layer for devshell.
package app

import (
	"context"
	"errors"

	"go.trai.ch/zerr"

	"github.com/embedder-rs/devshell/internal/adapters/shell"
	"github.com/embedder-rs/devshell/internal/core/domain"
	"github.com/embedder-rs/devshell/internal/core/ports"
	"github.com/embedder-rs/devshell/internal/engine/provisioner"
)

// defaultFormatter is used when the manifest does not name one.
const defaultFormatter = "alejandra"

// App represents the main application logic behind the CLI commands.
type App struct {
	configLoader ports.ConfigLoader
	provisioner  *provisioner.Provisioner
	formatterFor shell.FormatterFactory
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, prov *provisioner.Provisioner, formatterFor shell.FormatterFactory) *App {
	return &App{
		configLoader: loader,
		provisioner:  prov,
		formatterFor: formatterFor,
	}
}

// load reads and validates the manifest from the working directory.
func (a *App) load() (*domain.Manifest, error) {
	manifest, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return manifest, nil
}

// Provision runs the full provisioning pass for the current directory.
func (a *App) Provision(ctx context.Context, opts provisioner.Options) (*domain.Provision, error) {
	manifest, err := a.load()
	if err != nil {
		return nil, err
	}
	result, err := a.provisioner.Provision(ctx, manifest, opts)
	if err != nil {
		return nil, errors.Join(domain.ErrProvisionFailed, err)
	}
	return result, nil
}

// Check runs provisioning without the header side effect, for the
// drift-check-only operation.
func (a *App) Check(ctx context.Context) (*domain.Provision, error) {
	return a.Provision(ctx, provisioner.Options{SkipVendor: true})
}

// Vendor fetches the pinned engine source and copies the embedder header
// into the working directory. Returns the destination path.
func (a *App) Vendor(ctx context.Context, workDir string) (string, error) {
	manifest, err := a.load()
	if err != nil {
		return "", err
	}
	return a.provisioner.VendorOnly(ctx, manifest, workDir)
}

// Lock refreshes the lockfile from a fresh resolution of all pinned sources.
func (a *App) Lock(ctx context.Context) (*domain.Lockfile, error) {
	manifest, err := a.load()
	if err != nil {
		return nil, err
	}
	return a.provisioner.Lock(ctx, manifest)
}

// Format passes the arguments through to the manifest's formatter binary.
func (a *App) Format(ctx context.Context, args []string) error {
	manifest, err := a.load()
	if err != nil {
		return err
	}
	binary := manifest.Formatter.String()
	if binary == "" {
		binary = defaultFormatter
	}
	return a.formatterFor(binary).Format(ctx, args)
}
