package planner

import (
	"fmt"

	"github.com/remixastro/shockwave/pkg/errors"
)

// SiteID uniquely identifies a site in the local store.
type SiteID string

// Site is a launch site (location + pad) or a re-entry site
// (location + drop zone). Sites are looked up or created during
// reconciliation and never deleted by sync.
type Site struct {
	ID       SiteID   `json:"id" yaml:"id"`
	Kind     SiteKind `json:"kind" yaml:"kind"`
	Location string   `json:"location" yaml:"location"`
	// Pad is the launch pad for launch sites, the drop zone designator
	// for re-entry sites.
	Pad        string   `json:"pad" yaml:"pad"`
	Latitude   *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Country    string   `json:"country,omitempty" yaml:"country,omitempty"`
	ExternalID string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// Validate checks the site's required fields.
func (s *Site) Validate() error {
	if s.Location == "" {
		return errors.NewValidationError("location", "", "site location is required")
	}
	if s.Kind != SiteKindLaunch && s.Kind != SiteKindReentry {
		return errors.NewValidationError("kind", s.Kind, "must be LAUNCH or REENTRY")
	}
	return nil
}

// DisplayName is the human-readable "Location - Pad" form used in lists.
func (s *Site) DisplayName() string {
	if s.Pad == "" {
		return s.Location
	}
	return fmt.Sprintf("%s - %s", s.Location, s.Pad)
}

// Copy returns a deep copy of the site.
func (s *Site) Copy() *Site {
	c := *s
	c.Latitude = copyFloat(s.Latitude)
	c.Longitude = copyFloat(s.Longitude)
	return &c
}
