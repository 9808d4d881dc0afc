package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// EngineLockEntry is the lockfile entry name the drift check reads.
const EngineLockEntry = "flutter-engine"

// Lockfile represents the committed record of resolved source references.
// It is the only persistent state the provisioner owns; everything else is
// derived fresh on each activation.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int

	// Records maps source names to the exact reference they were pinned at.
	Records map[string]LockRecord
}

// LockRecord records what a single source resolved to when it was locked.
type LockRecord struct {
	// Ref is the declared reference at lock time (tag, branch or rev).
	Ref string `json:"ref"`

	// ResolvedRev is the commit the reference resolved to.
	ResolvedRev string `json:"resolved_rev,omitzero"`

	// NarHash is the content hash of the fetched source.
	NarHash string `json:"nar_hash,omitzero"`

	// Timestamp is when the record was written.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Record returns the record under entry, or ErrLockEntryMissing.
func (l *Lockfile) Record(entry string) (LockRecord, error) {
	rec, ok := l.Records[entry]
	if !ok {
		return LockRecord{}, zerr.With(ErrLockEntryMissing, "entry", entry)
	}
	return rec, nil
}

// Drift describes a divergence between the locked engine reference and the
// version the engine package actually resolved to. It is advisory only:
// provisioning proceeds regardless.
type Drift struct {
	// Entry is the lockfile entry name that was compared.
	Entry string

	// Locked is the reference recorded in the lockfile.
	Locked string

	// Resolved is the version string reported by the resolved package.
	Resolved string
}

// CheckDrift compares the lockfile record under entry against the resolved
// version string. It returns nil when the two are byte-identical or when no
// record exists (a missing record is reported separately, not as drift).
func (l *Lockfile) CheckDrift(entry, resolved string) *Drift {
	rec, ok := l.Records[entry]
	if !ok {
		return nil
	}
	if rec.Ref == resolved {
		return nil
	}
	return &Drift{
		Entry:    entry,
		Locked:   rec.Ref,
		Resolved: resolved,
	}
}
