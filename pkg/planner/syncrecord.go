package planner

import (
	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/errors"
)

// SyncMode identifies which slice of the external feed a sync run covers.
type SyncMode string

// Sync modes.
const (
	SyncModeUpcoming SyncMode = "upcoming"
	SyncModePrevious SyncMode = "previous"
	SyncModeRange    SyncMode = "range"
)

// String returns the string representation of a SyncMode.
func (m SyncMode) String() string {
	return string(m)
}

// Valid reports whether the mode is one of the known values.
func (m SyncMode) Valid() bool {
	switch m {
	case SyncModeUpcoming, SyncModePrevious, SyncModeRange:
		return true
	}
	return false
}

// SyncStatus is the terminal status of a sync session.
type SyncStatus string

// Sync statuses.
const (
	// SyncStatusSuccess means every record in the batch applied cleanly.
	SyncStatusSuccess SyncStatus = "success"
	// SyncStatusPartial means some records failed but the batch continued.
	SyncStatusPartial SyncStatus = "partial"
	// SyncStatusError means no record applied: the fetch failed, every
	// record failed, or the session was canceled before completing.
	SyncStatusError SyncStatus = "error"
)

// SyncRecord is the durable audit entry for one sync session. Exactly one
// is appended per run, including runs that fail before processing any
// record. Append-only; never mutated after creation.
//
// The serialized shape is a stable contract: external tooling reads sync
// history directly.
type SyncRecord struct {
	ID        string     `json:"id" yaml:"id"`
	Timestamp utc.Time   `json:"timestamp" yaml:"timestamp"`
	Mode      SyncMode   `json:"mode" yaml:"mode"`
	Added     int        `json:"added" yaml:"added"`
	Updated   int        `json:"updated" yaml:"updated"`
	Unchanged int        `json:"unchanged" yaml:"unchanged"`
	Failed    int        `json:"failed" yaml:"failed"`
	Status    SyncStatus `json:"status" yaml:"status"`
	// ErrorDetail carries the transport failure or the first per-record
	// failure messages. Empty on success.
	ErrorDetail string `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`
}

// Validate checks the audit entry's required fields.
func (r *SyncRecord) Validate() error {
	if !r.Mode.Valid() {
		return errors.NewValidationError("mode", r.Mode, "unknown sync mode")
	}
	switch r.Status {
	case SyncStatusSuccess, SyncStatusPartial, SyncStatusError:
	default:
		return errors.NewValidationError("status", r.Status, "unknown sync status")
	}
	if r.Timestamp.IsZero() {
		return errors.NewValidationError("timestamp", nil, "timestamp is required")
	}
	return nil
}

// Total returns how many records the session attempted.
func (r *SyncRecord) Total() int {
	return r.Added + r.Updated + r.Unchanged + r.Failed
}
