package config

// Shellfile represents the structure of the devshell.yaml manifest.
type Shellfile struct {
	Version   string              `yaml:"version"`
	Variant   string              `yaml:"variant"`
	Systems   []string            `yaml:"systems"`
	Inputs    map[string]InputDTO `yaml:"inputs"`
	Toolchain ToolchainDTO        `yaml:"toolchain"`
	Tools     []string            `yaml:"tools"`
	Engine    EngineDTO           `yaml:"engine"`
	Formatter string              `yaml:"formatter"`
}

// InputDTO represents a pinned source declaration.
type InputDTO struct {
	URL     string   `yaml:"url"`
	Ref     string   `yaml:"ref"`
	Kind    string   `yaml:"kind"`
	Flake   *bool    `yaml:"flake"`
	Follows []string `yaml:"follows"`
}

// ToolchainDTO represents the toolchain request.
type ToolchainDTO struct {
	Channel    string   `yaml:"channel"`
	Date       string   `yaml:"date"`
	Profile    string   `yaml:"profile"`
	Components []string `yaml:"components"`
}

// EngineDTO represents the engine configuration.
type EngineDTO struct {
	Source       string `yaml:"source"`
	Package      string `yaml:"package"`
	VendorHeader bool   `yaml:"vendorHeader"`
}
