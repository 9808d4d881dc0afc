package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// GenerateShellID creates a deterministic cache key from the resolved source
// set, the toolchain version and the tool list. Two provisioning runs with
// identical inputs produce identical IDs, which backs the determinism
// guarantee on LIBCLANG_PATH and FLUTTER_ENGINE.
func GenerateShellID(fetched []FetchedSource, toolchainVersion string, tools []string) string {
	parts := make([]string, 0, len(fetched)+len(tools)+1)
	for _, f := range fetched {
		parts = append(parts, f.Source.Name.String()+":"+f.StorePath)
	}
	parts = append(parts, "toolchain:"+toolchainVersion)
	for _, t := range tools {
		parts = append(parts, "tool:"+t)
	}
	slices.Sort(parts)

	hash := sha256.Sum256([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(hash[:])
}
