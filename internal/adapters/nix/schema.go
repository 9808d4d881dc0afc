package nix

// prefetchResult is the JSON output of `nix flake prefetch --json`.
type prefetchResult struct {
	Hash      string `json:"hash"`
	StorePath string `json:"storePath"`
	Locked    struct {
		Type  string `json:"type"`
		Owner string `json:"owner"`
		Repo  string `json:"repo"`
		Rev   string `json:"rev"`
		Ref   string `json:"ref"`
	} `json:"locked"`
}

// buildResults is the JSON output of `nix build --json`.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// devEnvOutput is the JSON output of `nix print-dev-env --json`.
type devEnvOutput struct {
	Variables map[string]devEnvVariable `json:"variables"`
}

type devEnvVariable struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// toolchainEval is the JSON shape of the toolchain evaluation expression.
type toolchainEval struct {
	Version    string   `json:"version"`
	Components []string `json:"components"`
}
