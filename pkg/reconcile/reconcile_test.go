package reconcile

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

func date(year int, month time.Month, day int) utc.Time {
	return utc.Time{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func launchDraft() *feed.LaunchDraft {
	return &feed.LaunchDraft{
		ExternalID: "ext-100",
		Date:       date(2025, 6, 1),
		Site: feed.SiteRef{
			ExternalID: "pad-80",
			Location:   "Cape Canaveral SFS",
			Pad:        "SLC-40",
			Country:    "US",
		},
		Rocket: &feed.RocketRef{
			ExternalID: "164",
			Name:       "Falcon 9",
			Family:     "Falcon",
			Variant:    "Block 5",
		},
		Mission: "Starlink Group 6-1",
		Payload: "Starlink Group 6-1",
		Orbit:   "LEO",
		Status:  planner.StatusGo,
	}
}

func TestLaunchInsertCreatesDependencies(t *testing.T) {
	store := planner.New()
	r := New(store)

	outcome, err := r.Launch(launchDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	launch, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	assert.Equal(t, planner.ProvenanceExternal, launch.Provenance)
	require.NotNil(t, launch.LastSynced)

	site, err := store.Site(launch.SiteID)
	require.NoError(t, err)
	assert.Equal(t, planner.SiteKindLaunch, site.Kind)
	assert.Equal(t, "Cape Canaveral SFS", site.Location)

	rocket, err := store.Rocket(launch.RocketID)
	require.NoError(t, err)
	assert.Equal(t, "Falcon 9", rocket.Name)
}

func TestLaunchIdempotent(t *testing.T) {
	store := planner.New()
	r := New(store)

	outcome, err := r.Launch(launchDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	// the same draft again touches nothing but the sync timestamp
	outcome, err = r.Launch(launchDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	assert.Len(t, store.Launches(), 1)
	assert.Len(t, store.Sites(), 1)
	assert.Len(t, store.Rockets(), 1)
}

func TestLaunchUpdateOverwritesFeedFields(t *testing.T) {
	store := planner.New()
	r := New(store)

	_, err := r.Launch(launchDraft())
	require.NoError(t, err)

	d := launchDraft()
	d.Date = date(2025, 6, 3)
	d.Status = planner.StatusSuccess
	success := true
	d.Success = &success

	outcome, err := r.Launch(d)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	launch, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	assert.Equal(t, date(2025, 6, 3), launch.Date)
	assert.Equal(t, planner.StatusSuccess, launch.Status)
	require.NotNil(t, launch.Success)
	assert.True(t, *launch.Success)
}

func TestLaunchPreservesOverlays(t *testing.T) {
	store := planner.New()
	r := New(store)

	_, err := r.Launch(launchDraft())
	require.NoError(t, err)

	launch, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	launch.NOTAMReference = "A1234/25"
	launch.Remarks = "range safety briefed"
	require.NoError(t, store.UpdateLaunch(launch))

	d := launchDraft()
	d.Status = planner.StatusScrubbed
	_, err = r.Launch(d)
	require.NoError(t, err)

	launch, ok = store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	assert.Equal(t, planner.StatusScrubbed, launch.Status)
	assert.Equal(t, "A1234/25", launch.NOTAMReference, "overlay fields survive the sync")
	assert.Equal(t, "range safety briefed", launch.Remarks)
}

func TestLaunchNeverTouchesManualRecords(t *testing.T) {
	store := planner.New()
	manual := &planner.Launch{
		Date:       date(2025, 6, 1),
		Mission:    "Classified payload",
		Status:     planner.StatusScheduled,
		Provenance: planner.ProvenanceManual,
	}
	require.NoError(t, store.InsertLaunch(manual))

	r := New(store)
	outcome, err := r.Launch(launchDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome, "a feed record coexists with the manual one")

	kept, err := store.Launch(manual.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classified payload", kept.Mission)
	assert.Len(t, store.Launches(), 2)
}

func TestLaunchUnchangedStillAdvancesLastSynced(t *testing.T) {
	store := planner.New()
	t0 := date(2025, 6, 1)
	t1 := date(2025, 6, 2)
	now := t0
	r := New(store, WithClock(func() utc.Time { return now }))

	_, err := r.Launch(launchDraft())
	require.NoError(t, err)

	now = t1
	outcome, err := r.Launch(launchDraft())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	launch, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	require.NotNil(t, launch.LastSynced)
	assert.True(t, launch.LastSynced.Equal(t1))
}

func TestLaunchReusesSiteByFoldedName(t *testing.T) {
	store := planner.New()
	existing := &planner.Site{
		Kind:     planner.SiteKindLaunch,
		Location: "cape canaveral sfs",
		Pad:      "slc-40",
	}
	require.NoError(t, store.AddSite(existing))

	r := New(store)
	_, err := r.Launch(launchDraft())
	require.NoError(t, err)

	launch, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	assert.Equal(t, existing.ID, launch.SiteID)
	assert.Len(t, store.Sites(), 1)
}

func TestReentryLinksToParentLaunch(t *testing.T) {
	store := planner.New()
	r := New(store)

	_, err := r.Launch(launchDraft())
	require.NoError(t, err)

	draft := &feed.ReentryDraft{
		ExternalID: "re-1",
		Date:       date(2025, 6, 1),
		Site: feed.SiteRef{
			Location: "Atlantic Ocean",
			Pad:      "JRTI Drop Zone",
		},
		VehicleComponent: "First Stage",
		ReentryType:      "propulsive",
		Status:           planner.StatusScheduled,
		LaunchExternalID: "ext-100",
	}
	outcome, err := r.Reentry(draft)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	reentry, ok := store.FindReentryByExternalID("re-1")
	require.True(t, ok)
	parent, ok := store.FindLaunchByExternalID("ext-100")
	require.True(t, ok)
	assert.Equal(t, parent.ID, reentry.LaunchID)

	zone, err := store.Site(reentry.SiteID)
	require.NoError(t, err)
	assert.Equal(t, planner.SiteKindReentry, zone.Kind)
}

func TestReentryUnknownParentStaysUnlinked(t *testing.T) {
	store := planner.New()
	r := New(store)

	draft := &feed.ReentryDraft{
		ExternalID:       "re-2",
		Date:             date(2025, 7, 10),
		Site:             feed.SiteRef{Location: "Pacific Ocean"},
		VehicleComponent: "Capsule",
		Status:           planner.StatusScheduled,
		LaunchExternalID: "nope",
	}
	_, err := r.Reentry(draft)
	require.NoError(t, err)

	reentry, ok := store.FindReentryByExternalID("re-2")
	require.True(t, ok)
	assert.Empty(t, reentry.LaunchID)
}
