package nix

import (
	"fmt"
	"strings"

	"github.com/embedder-rs/devshell/internal/core/domain"
)

// importPkgs builds the expression importing the fetched index snapshot,
// optionally layered with the toolchain overlay. Store paths are immutable,
// so the resulting package set is a pure function of the fetched sources.
func importPkgs(system string, index domain.FetchedSource, overlay *domain.FetchedSource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "import %s {\n", index.StorePath)
	fmt.Fprintf(&b, "  system = %q;\n", system)
	if overlay != nil {
		fmt.Fprintf(&b, "  overlays = [ (import %s) ];\n", overlay.StorePath)
	}
	b.WriteString("}")
	return b.String()
}

// toolchainAttr builds the attribute expression selecting the requested
// toolchain from the overlay's rust-bin attribute set.
func toolchainAttr(spec domain.ToolchainSpec) string {
	snapshot := "latest"
	if spec.IsPinned() {
		snapshot = fmt.Sprintf("%q", spec.Date.String())
	}

	attr := fmt.Sprintf("pkgs.rust-bin.%s.%s.%s",
		spec.Channel.String(), snapshot, spec.Profile.String())

	if len(spec.Components) == 0 {
		return attr
	}

	exts := make([]string, len(spec.Components))
	for i, c := range spec.Components {
		exts[i] = fmt.Sprintf("%q", c.String())
	}
	return fmt.Sprintf("%s.override { extensions = [ %s ]; }", attr, strings.Join(exts, " "))
}

// toolchainEvalExpr builds the expression the resolver evaluates to learn
// the toolchain version and component set.
func toolchainEvalExpr(system string, spec domain.ToolchainSpec, overlay, index domain.FetchedSource) string {
	var b strings.Builder
	b.WriteString("let\n")
	fmt.Fprintf(&b, "pkgs = %s;\n", importPkgs(system, index, &overlay))
	fmt.Fprintf(&b, "toolchain = %s;\n", toolchainAttr(spec))
	b.WriteString("in\n")
	b.WriteString("{\n")
	b.WriteString("version = toolchain.version;\n")
	b.WriteString("components = map (c: c.pname or c.name) (toolchain.passthru.availableComponents or []);\n")
	b.WriteString("}\n")
	return b.String()
}

// toolchainBuildExpr builds the expression realising the toolchain derivation.
func toolchainBuildExpr(system string, spec domain.ToolchainSpec, overlay, index domain.FetchedSource) string {
	var b strings.Builder
	b.WriteString("let\n")
	fmt.Fprintf(&b, "pkgs = %s;\n", importPkgs(system, index, &overlay))
	b.WriteString("in\n")
	fmt.Fprintf(&b, "%s\n", toolchainAttr(spec))
	return b.String()
}

// engineExpr builds the expression selecting the packaged engine attribute
// from the index snapshot.
func engineExpr(system, attrPath string, index domain.FetchedSource) string {
	var b strings.Builder
	b.WriteString("let\n")
	fmt.Fprintf(&b, "pkgs = %s;\n", importPkgs(system, index, nil))
	b.WriteString("in\n")
	fmt.Fprintf(&b, "pkgs.%s\n", attrPath)
	return b.String()
}

// shellExpr builds the mkShell expression realising the full environment.
// LIBCLANG_PATH derives from the index's libclang library output and
// FLUTTER_ENGINE from the already-realised engine artifact.
func shellExpr(req domain.ShellRequest, overlay *domain.FetchedSource) string {
	var b strings.Builder
	b.WriteString("let\n")
	fmt.Fprintf(&b, "pkgs = %s;\n", importPkgs(req.System, req.Index, overlay))
	if overlay != nil {
		fmt.Fprintf(&b, "toolchain = %s;\n", toolchainAttr(req.Toolchain.Spec))
	}
	b.WriteString("in\n")
	b.WriteString("pkgs.mkShell {\n")
	b.WriteString("packages = [\n")
	if overlay != nil {
		b.WriteString("toolchain\n")
	}
	for _, tool := range req.Tools {
		fmt.Fprintf(&b, "pkgs.%s\n", tool)
	}
	b.WriteString("];\n")
	fmt.Fprintf(&b, "%s = \"${pkgs.libclang.lib}/lib\";\n", domain.EnvLibclangPath)
	fmt.Fprintf(&b, "%s = %q;\n", domain.EnvFlutterEngine, req.Engine.LibDir)
	b.WriteString("}\n")
	return b.String()
}
