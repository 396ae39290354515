// Package planner provides the core data model and local store for the
// shockwave launch planning system. It holds launches, re-entries, sites,
// and rockets, and records the audit trail of feed synchronization runs.
//
// The store is designed to be thread-safe and swappable: the reconciler
// and sync session take the Store interface as an explicit dependency, so
// tests run against the same in-memory implementation production uses,
// optionally persisted to YAML files on disk.
//
// Example usage:
//
//	store := planner.New()
//	launch := &planner.Launch{
//	    Date:       utc.Now(),
//	    Mission:    "Starlink Group 6-1",
//	    Provenance: planner.ProvenanceManual,
//	}
//	if err := store.InsertLaunch(launch); err != nil {
//	    log.Fatal(err)
//	}
package planner

// Variant identifies the two entity kinds the planner tracks.
type Variant string

// Entity variants.
const (
	VariantLaunch  Variant = "launch"
	VariantReentry Variant = "reentry"
)

// String returns the string representation of a Variant.
func (v Variant) String() string {
	return string(v)
}

// Provenance tags where a record came from. It governs which fields a
// reconciliation pass may overwrite: MANUAL records are never visited by
// sync, EXTERNAL records have their feed-sourced fields overwritten while
// overlay fields (NOTAM reference, remarks) are preserved.
type Provenance string

// Provenance values.
const (
	ProvenanceManual   Provenance = "MANUAL"
	ProvenanceExternal Provenance = "EXTERNAL"
)

// String returns the string representation of a Provenance.
func (p Provenance) String() string {
	return string(p)
}

// Valid reports whether the provenance is one of the known values.
func (p Provenance) Valid() bool {
	return p == ProvenanceManual || p == ProvenanceExternal
}

// SiteKind distinguishes launch sites from re-entry drop zones.
type SiteKind string

// Site kinds.
const (
	SiteKindLaunch  SiteKind = "LAUNCH"
	SiteKindReentry SiteKind = "REENTRY"
)
