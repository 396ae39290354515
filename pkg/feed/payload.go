// Package feed models the external launch feed's payloads and normalizes
// them into canonical drafts for reconciliation. Payload shapes follow a
// Launch Library style JSON API; everything downstream of NormalizeLaunch
// and NormalizeReentry only ever sees typed drafts, never raw JSON.
package feed

import (
	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/planner"
)

// LaunchBatch is one page of launch results from the feed.
type LaunchBatch struct {
	Count   int             `json:"count"`
	Next    string          `json:"next"`
	Results []LaunchPayload `json:"results"`
}

// ReentryBatch is one page of re-entry results from the feed.
type ReentryBatch struct {
	Count   int              `json:"count"`
	Next    string           `json:"next"`
	Results []ReentryPayload `json:"results"`
}

// LaunchPayload is one raw launch record as the feed serves it.
type LaunchPayload struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Name        string          `json:"name"`
	NET         string          `json:"net"`
	WindowStart string          `json:"window_start"`
	WindowEnd   string          `json:"window_end"`
	Status      *StatusPayload  `json:"status"`
	Rocket      *RocketPayload  `json:"rocket"`
	Pad         *PadPayload     `json:"pad"`
	Mission     *MissionPayload `json:"mission"`
	FailReason  string          `json:"failreason"`
}

// ReentryPayload is one raw re-entry record as the feed serves it.
type ReentryPayload struct {
	ID          string          `json:"id"`
	Component   string          `json:"component"`
	Epoch       string          `json:"epoch"`
	ReentryType string          `json:"reentry_type"`
	Status      *StatusPayload  `json:"status"`
	Zone        *PadPayload     `json:"zone"`
	LaunchID    string          `json:"launch_id"`
}

// StatusPayload is the feed's status object.
type StatusPayload struct {
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
}

// RocketPayload wraps the feed's rocket configuration.
type RocketPayload struct {
	Configuration *RocketConfigPayload `json:"configuration"`
}

// RocketConfigPayload identifies a launch vehicle configuration.
type RocketConfigPayload struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Family  string `json:"family"`
	Variant string `json:"variant"`
}

// PadPayload identifies a launch pad or re-entry zone.
type PadPayload struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Latitude  *float64         `json:"latitude,string,omitempty"`
	Longitude *float64         `json:"longitude,string,omitempty"`
	Location  *LocationPayload `json:"location"`
}

// LocationPayload is the pad's geographic parent.
type LocationPayload struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// MissionPayload describes what a launch carries and where it goes.
type MissionPayload struct {
	Name  string        `json:"name"`
	Type  string        `json:"type"`
	Orbit *OrbitPayload `json:"orbit"`
}

// OrbitPayload is the feed's orbit object.
type OrbitPayload struct {
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
}

// SiteRef is a draft's resolved-later reference to a site. The reconciler
// resolves it against the store by external id, then by normalized name.
type SiteRef struct {
	ExternalID string
	Location   string
	Pad        string
	Country    string
	Latitude   *float64
	Longitude  *float64
}

// RocketRef is a draft's resolved-later reference to a rocket.
type RocketRef struct {
	ExternalID string
	Name       string
	Family     string
	Variant    string
}

// LaunchDraft is the canonical, fully typed form of one launch payload.
// Optional fields are nil when the feed did not supply them; the
// reconciler treats nil as "unset", never as "keep the local value" for
// externally authoritative fields.
type LaunchDraft struct {
	ExternalID  string
	Date        utc.Time
	WindowStart *utc.Time
	WindowEnd   *utc.Time
	Site        SiteRef
	Rocket      *RocketRef
	Mission     string
	Payload     string
	Orbit       string
	Status      planner.Status
	Success     *bool
	FailReason  string
	SourceURL   string
}

// ReentryDraft is the canonical, fully typed form of one re-entry payload.
type ReentryDraft struct {
	ExternalID       string
	Date             utc.Time
	Site             SiteRef
	VehicleComponent string
	ReentryType      string
	Status           planner.Status
	LaunchExternalID string
}
