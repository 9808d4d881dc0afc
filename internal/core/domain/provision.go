package domain

// Step names reported by the provisioner.
const (
	StepFetch     = "fetch"
	StepToolchain = "toolchain"
	StepEngine    = "engine"
	StepShell     = "shell"
	StepVendor    = "vendor"
	StepDrift     = "drift-check"
)

// StepReport records the outcome of one provisioning step.
type StepReport struct {
	// Name is the step name, suffixed with the source name for fetch steps
	// (e.g. "fetch:nixpkgs").
	Name string

	// Status is the terminal status the step reached.
	Status StepStatus

	// Detail is an optional human-readable note (store path, version, ...).
	Detail string
}

// Provision is the result of a full provisioning run: the shell environment
// plus the advisory findings gathered along the way.
type Provision struct {
	// Shell is the realised environment.
	Shell ShellEnv

	// Toolchain is the resolved toolchain description.
	Toolchain ResolvedToolchain

	// Engine is the realised engine artifact.
	Engine EngineArtifact

	// VendoredHeader is the absolute path of the copied embedder header,
	// empty when the variant does not vendor it.
	VendoredHeader string

	// Drift is non-nil when the engine version diverged from the lockfile.
	Drift *Drift

	// Warnings holds advisory messages that must not fail provisioning
	// (e.g. a missing engine shared object).
	Warnings []string

	// Steps is the ordered step report.
	Steps []StepReport
}
