package schedule

import (
	"github.com/remixastro/shockwave/pkg/planner"
)

// EventsFromStore flattens every launch and re-entry in the store into
// schedulable events. Site keys are the sites' display names so groups
// read naturally in timeline output; a record whose site is missing
// keeps the raw id, and a record with no site at all stays unplaceable.
func EventsFromStore(r planner.Reader) []Event {
	var events []Event

	for _, launch := range r.Launches() {
		events = append(events, Event{
			EntityID: string(launch.ID),
			Variant:  planner.VariantLaunch,
			SiteKey:  siteKey(r, launch.SiteID),
			Date:     launch.Date,
		})
	}
	for _, reentry := range r.Reentries() {
		events = append(events, Event{
			EntityID: string(reentry.ID),
			Variant:  planner.VariantReentry,
			SiteKey:  siteKey(r, reentry.SiteID),
			Date:     reentry.Date,
		})
	}
	return events
}

func siteKey(r planner.Reader, id planner.SiteID) string {
	if id == "" {
		return ""
	}
	site, err := r.Site(id)
	if err != nil {
		return string(id)
	}
	return site.DisplayName()
}
