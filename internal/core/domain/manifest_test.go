package domain_test

import (
	"strings"
	"testing"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

func TestManifest_SupportsSystem(t *testing.T) {
	m := &domain.Manifest{
		Systems: []domain.InternedString{
			domain.NewInternedString("x86_64-linux"),
			domain.NewInternedString("aarch64-linux"),
		},
	}

	if !m.SupportsSystem("x86_64-linux") {
		t.Error("expected x86_64-linux to be supported")
	}
	if !m.SupportsSystem("aarch64-linux") {
		t.Error("expected aarch64-linux to be supported")
	}
	if m.SupportsSystem("x86_64-darwin") {
		t.Error("expected x86_64-darwin to be unsupported")
	}
	if m.SupportsSystem("") {
		t.Error("expected empty system to be unsupported")
	}
}

func TestManifest_Vendored(t *testing.T) {
	if !(&domain.Manifest{Variant: domain.VariantVendored}).Vendored() {
		t.Error("expected vendored variant to report Vendored")
	}
	if (&domain.Manifest{Variant: domain.VariantPackaged}).Vendored() {
		t.Error("expected packaged variant to not report Vendored")
	}
}

func TestCurrentSystem(t *testing.T) {
	system := domain.CurrentSystem()
	if !strings.HasSuffix(system, "-linux") {
		t.Errorf("expected a Linux system identifier, got %q", system)
	}
}

func TestToolchainSpec_IsPinned(t *testing.T) {
	pinned := domain.ToolchainSpec{
		Channel: domain.NewInternedString("nightly"),
		Date:    domain.NewInternedString("2024-08-20"),
	}
	if !pinned.IsPinned() {
		t.Error("expected dated spec to be pinned")
	}

	unpinned := domain.ToolchainSpec{Channel: domain.NewInternedString("nightly")}
	if unpinned.IsPinned() {
		t.Error("expected undated spec to be unpinned")
	}
}
