package planner

import (
	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/errors"
)

// ReentryID uniquely identifies a re-entry in the local store.
type ReentryID string

// Reentry represents one re-entry event: a vehicle component coming down
// over a drop zone, optionally traced back to the launch that put it up.
//
// Remarks is a local overlay, never overwritten by feed reconciliation.
type Reentry struct {
	ID ReentryID `json:"id" yaml:"id"`

	// Temporal anchor
	Date utc.Time `json:"date" yaml:"date"`

	// References
	SiteID   SiteID   `json:"site_id,omitempty" yaml:"site_id,omitempty"` // drop zone
	LaunchID LaunchID `json:"launch_id,omitempty" yaml:"launch_id,omitempty"`

	// Event detail
	VehicleComponent string `json:"vehicle_component,omitempty" yaml:"vehicle_component,omitempty"`
	ReentryType      string `json:"reentry_type,omitempty" yaml:"reentry_type,omitempty"` // controlled, uncontrolled, propulsive, ...
	Status           Status `json:"status,omitempty" yaml:"status,omitempty"`

	// Local overlay, preserved across syncs
	Remarks string `json:"remarks,omitempty" yaml:"remarks,omitempty"`

	// Provenance
	Provenance Provenance `json:"provenance" yaml:"provenance"`
	ExternalID string     `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	LastSynced *utc.Time  `json:"last_synced,omitempty" yaml:"last_synced,omitempty"`

	// Timestamps for record keeping
	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time `json:"updated_at" yaml:"updated_at"`
}

// Validate enforces the provenance invariant: an external id is present
// if and only if the record is externally sourced.
func (r *Reentry) Validate() error {
	if !r.Provenance.Valid() {
		return errors.NewValidationError("provenance", r.Provenance, "must be MANUAL or EXTERNAL")
	}
	if r.Provenance == ProvenanceExternal && r.ExternalID == "" {
		return errors.NewValidationError("external_id", "", "required for external records")
	}
	if r.Provenance == ProvenanceManual && r.ExternalID != "" {
		return errors.NewValidationError("external_id", r.ExternalID, "forbidden on manual records")
	}
	if r.Date.IsZero() {
		return errors.NewValidationError("date", nil, "re-entry date is required")
	}
	return nil
}

// Copy returns a deep copy of the re-entry.
func (r *Reentry) Copy() *Reentry {
	c := *r
	c.LastSynced = copyTime(r.LastSynced)
	return &c
}
