package planner

import (
	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/errors"
)

// LaunchID uniquely identifies a launch in the local store.
type LaunchID string

// Launch represents one launch event. The temporal anchor is Date; the
// optional launch window narrows it. SiteID references a launch pad.
//
// NOTAMReference and Remarks are local overlays: they belong to the
// planning desk and are never overwritten by feed reconciliation.
type Launch struct {
	ID LaunchID `json:"id" yaml:"id"`

	// Temporal anchor
	Date        utc.Time  `json:"date" yaml:"date"`
	WindowStart *utc.Time `json:"window_start,omitempty" yaml:"window_start,omitempty"`
	WindowEnd   *utc.Time `json:"window_end,omitempty" yaml:"window_end,omitempty"`

	// References
	SiteID   SiteID   `json:"site_id,omitempty" yaml:"site_id,omitempty"`
	RocketID RocketID `json:"rocket_id,omitempty" yaml:"rocket_id,omitempty"`

	// Mission
	Mission       string   `json:"mission,omitempty" yaml:"mission,omitempty"`
	Payload       string   `json:"payload,omitempty" yaml:"payload,omitempty"`
	PayloadMass   *float64 `json:"payload_mass,omitempty" yaml:"payload_mass,omitempty"` // kg
	Orbit         string   `json:"orbit,omitempty" yaml:"orbit,omitempty"`
	Status        Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Success       *bool    `json:"success,omitempty" yaml:"success,omitempty"`
	FailureReason string   `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
	SourceURL     string   `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// Local overlays, preserved across syncs
	NOTAMReference string `json:"notam_reference,omitempty" yaml:"notam_reference,omitempty"`
	Remarks        string `json:"remarks,omitempty" yaml:"remarks,omitempty"`

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
func (l *Launch) Validate() error {
	if !l.Provenance.Valid() {
		return errors.NewValidationError("provenance", l.Provenance, "must be MANUAL or EXTERNAL")
	}
	if l.Provenance == ProvenanceExternal && l.ExternalID == "" {
		return errors.NewValidationError("external_id", "", "required for external records")
	}
	if l.Provenance == ProvenanceManual && l.ExternalID != "" {
		return errors.NewValidationError("external_id", l.ExternalID, "forbidden on manual records")
	}
	if l.Date.IsZero() {
		return errors.NewValidationError("date", nil, "launch date is required")
	}
	return nil
}

// Copy returns a deep copy of the launch.
func (l *Launch) Copy() *Launch {
	c := *l
	c.WindowStart = copyTime(l.WindowStart)
	c.WindowEnd = copyTime(l.WindowEnd)
	c.LastSynced = copyTime(l.LastSynced)
	c.PayloadMass = copyFloat(l.PayloadMass)
	c.Success = copyBool(l.Success)
	return &c
}

func copyTime(t *utc.Time) *utc.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
