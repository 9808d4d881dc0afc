package domain_test

import (
	"testing"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

func fetchedSource(name, storePath string) domain.FetchedSource {
	return domain.FetchedSource{
		Source:    domain.PinnedSource{Name: domain.NewInternedString(name)},
		StorePath: storePath,
	}
}

func TestGenerateShellID_Deterministic(t *testing.T) {
	fetched := []domain.FetchedSource{
		fetchedSource("nixpkgs", "/nix/store/aaaa-nixpkgs"),
		fetchedSource("rust-overlay", "/nix/store/bbbb-overlay"),
	}
	tools := []string{"alejandra"}

	id1 := domain.GenerateShellID(fetched, "1.82.0-nightly", tools)
	id2 := domain.GenerateShellID(fetched, "1.82.0-nightly", tools)
	if id1 != id2 {
		t.Errorf("expected identical IDs for identical inputs, got %q and %q", id1, id2)
	}
	if len(id1) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(id1))
	}
}

func TestGenerateShellID_OrderIndependent(t *testing.T) {
	a := fetchedSource("nixpkgs", "/nix/store/aaaa-nixpkgs")
	b := fetchedSource("rust-overlay", "/nix/store/bbbb-overlay")

	id1 := domain.GenerateShellID([]domain.FetchedSource{a, b}, "1.82.0", nil)
	id2 := domain.GenerateShellID([]domain.FetchedSource{b, a}, "1.82.0", nil)
	if id1 != id2 {
		t.Errorf("expected source order not to affect the ID, got %q and %q", id1, id2)
	}
}

func TestGenerateShellID_SensitiveToInputs(t *testing.T) {
	fetched := []domain.FetchedSource{fetchedSource("nixpkgs", "/nix/store/aaaa-nixpkgs")}
	base := domain.GenerateShellID(fetched, "1.82.0", nil)

	t.Run("store path changes the ID", func(t *testing.T) {
		moved := []domain.FetchedSource{fetchedSource("nixpkgs", "/nix/store/cccc-nixpkgs")}
		if got := domain.GenerateShellID(moved, "1.82.0", nil); got == base {
			t.Error("expected a different ID for a different store path")
		}
	})

	t.Run("toolchain version changes the ID", func(t *testing.T) {
		if got := domain.GenerateShellID(fetched, "1.83.0", nil); got == base {
			t.Error("expected a different ID for a different toolchain version")
		}
	})

	t.Run("tool list changes the ID", func(t *testing.T) {
		if got := domain.GenerateShellID(fetched, "1.82.0", []string{"alejandra"}); got == base {
			t.Error("expected a different ID for a different tool list")
		}
	})
}
