package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/errors"
	"github.com/remixastro/shockwave/pkg/planner"
)

// externalID renders the feed's numeric object ids as store identifiers.
// Zero means the feed omitted the id.
func externalID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// NormalizeLaunch maps one raw launch payload into a canonical draft.
// It is pure: no I/O, no store access. A payload missing any identity
// field (feed id, parseable date, site) yields a MalformedRecordError
// and must be tallied as a per-record failure by the caller.
func NormalizeLaunch(p LaunchPayload) (*LaunchDraft, error) {
	if p.ID == "" {
		return nil, errors.NewMalformedRecordError("", "id", "missing feed identifier")
	}

	date, err := parseFeedTime(p.NET)
	if err != nil {
		return nil, errors.NewMalformedRecordError(p.ID, "net", "unparseable launch time: "+p.NET)
	}

	site, err := normalizeSite(p.ID, p.Pad)
	if err != nil {
		return nil, err
	}

	draft := &LaunchDraft{
		ExternalID: p.ID,
		Date:       date,
		Site:       site,
		SourceURL:  p.URL,
		FailReason: strings.TrimSpace(p.FailReason),
	}

	if t, err := parseFeedTime(p.WindowStart); err == nil {
		draft.WindowStart = &t
	}
	if t, err := parseFeedTime(p.WindowEnd); err == nil {
		draft.WindowEnd = &t
	}

	if p.Rocket != nil && p.Rocket.Configuration != nil && p.Rocket.Configuration.Name != "" {
		cfg := p.Rocket.Configuration
		draft.Rocket = &RocketRef{
			ExternalID: externalID(cfg.ID),
			Name:       cfg.Name,
			Family:     cfg.Family,
			Variant:    cfg.Variant,
		}
	}

	if p.Mission != nil {
		draft.Payload = p.Mission.Name
		if p.Mission.Orbit != nil {
			if p.Mission.Orbit.Abbrev != "" {
				draft.Orbit = p.Mission.Orbit.Abbrev
			} else {
				draft.Orbit = p.Mission.Orbit.Name
			}
		}
	}
	draft.Mission = missionName(p.Name, p.Mission)

	if p.Status != nil {
		if p.Status.Name == "" {
			return nil, errors.NewMalformedRecordError(p.ID, "status", "status object without a name")
		}
		draft.Status = planner.ParseStatus(p.Status.Name)
	} else {
		draft.Status = planner.StatusScheduled
	}
	draft.Success = successFromStatus(draft.Status)

	return draft, nil
}

// NormalizeReentry maps one raw re-entry payload into a canonical draft.
func NormalizeReentry(p ReentryPayload) (*ReentryDraft, error) {
	if p.ID == "" {
		return nil, errors.NewMalformedRecordError("", "id", "missing feed identifier")
	}

	date, err := parseFeedTime(p.Epoch)
	if err != nil {
		return nil, errors.NewMalformedRecordError(p.ID, "epoch", "unparseable re-entry time: "+p.Epoch)
	}

	site, err := normalizeSite(p.ID, p.Zone)
	if err != nil {
		return nil, err
	}

	draft := &ReentryDraft{
		ExternalID:       p.ID,
		Date:             date,
		Site:             site,
		VehicleComponent: strings.TrimSpace(p.Component),
		ReentryType:      strings.TrimSpace(p.ReentryType),
		LaunchExternalID: p.LaunchID,
		Status:           planner.StatusScheduled,
	}
	if p.Status != nil && p.Status.Name != "" {
		draft.Status = planner.ParseStatus(p.Status.Name)
	}

	return draft, nil
}

// normalizeSite maps the pad/zone object into a SiteRef. The site is an
// identity field: a payload without one is malformed.
func normalizeSite(recordID string, pad *PadPayload) (SiteRef, error) {
	if pad == nil {
		return SiteRef{}, errors.NewMalformedRecordError(recordID, "pad", "missing site reference")
	}
	location := ""
	country := ""
	if pad.Location != nil {
		location = strings.TrimSpace(pad.Location.Name)
		country = pad.Location.CountryCode
	}
	if location == "" && strings.TrimSpace(pad.Name) == "" {
		return SiteRef{}, errors.NewMalformedRecordError(recordID, "pad", "site reference without location or name")
	}
	if location == "" {
		location = strings.TrimSpace(pad.Name)
	}
	return SiteRef{
		ExternalID: externalID(pad.ID),
		Location:   location,
		Pad:        strings.TrimSpace(pad.Name),
		Country:    country,
		Latitude:   pad.Latitude,
		Longitude:  pad.Longitude,
	}, nil
}

// missionName extracts the mission part of the feed's "Vehicle | Mission"
// display name, falling back to the mission object.
func missionName(name string, mission *MissionPayload) string {
	if idx := strings.Index(name, "|"); idx >= 0 {
		if m := strings.TrimSpace(name[idx+1:]); m != "" {
			return m
		}
	}
	if mission != nil {
		return mission.Name
	}
	return strings.TrimSpace(name)
}

// successFromStatus derives the ternary success flag: true for Success,
// false for any failure, nil (undetermined) otherwise.
func successFromStatus(s planner.Status) *bool {
	switch s {
	case planner.StatusSuccess:
		v := true
		return &v
	case planner.StatusFailure, planner.StatusPartialFailure:
		v := false
		return &v
	}
	return nil
}

// parseFeedTime accepts the feed's RFC3339 timestamps and bare dates.
func parseFeedTime(s string) (utc.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return utc.Time{}, errors.NewParseError("date", "", "empty timestamp", nil)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return utc.New(t), nil
		}
	}
	return utc.Time{}, errors.NewParseError("date", "", "unrecognized timestamp: "+s, nil)
}
