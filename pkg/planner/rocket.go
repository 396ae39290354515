package planner

import "github.com/remixastro/shockwave/pkg/errors"

// RocketID uniquely identifies a rocket in the local store.
type RocketID string

// Rocket is a launch vehicle configuration referenced by launches.
// Rockets are looked up or created during reconciliation (by external id,
// with normalized name as fallback) and never deleted by sync.
type Rocket struct {
	ID           RocketID `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Family       string   `json:"family,omitempty" yaml:"family,omitempty"`
	Variant      string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Country      string   `json:"country,omitempty" yaml:"country,omitempty"`
	PayloadLEO   *int64   `json:"payload_leo,omitempty" yaml:"payload_leo,omitempty"` // kg to LEO
	PayloadGTO   *int64   `json:"payload_gto,omitempty" yaml:"payload_gto,omitempty"` // kg to GTO
	ExternalID   string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// Validate checks the rocket's required fields.
func (r *Rocket) Validate() error {
	if r.Name == "" {
		return errors.NewValidationError("name", "", "rocket name is required")
	}
	return nil
}

// Copy returns a deep copy of the rocket.
func (r *Rocket) Copy() *Rocket {
	c := *r
	if r.PayloadLEO != nil {
		v := *r.PayloadLEO
		c.PayloadLEO = &v
	}
	if r.PayloadGTO != nil {
		v := *r.PayloadGTO
		c.PayloadGTO = &v
	}
	return &c
}
