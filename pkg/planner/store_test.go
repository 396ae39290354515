package planner

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/errors"
)

func date(y int, m time.Month, d int) utc.Time {
	return utc.Time{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestInsertLaunchAssignsID(t *testing.T) {
	store := New()
	launch := &Launch{
		Date:       date(2025, 6, 1),
		Mission:    "Starlink Group 6-1",
		Provenance: ProvenanceManual,
	}

	require.NoError(t, store.InsertLaunch(launch))
	assert.NotEmpty(t, launch.ID)
	assert.False(t, launch.CreatedAt.IsZero())

	got, err := store.Launch(launch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Starlink Group 6-1", got.Mission)
}

func TestProvenanceInvariant(t *testing.T) {
	store := New()

	tests := []struct {
		name   string
		launch *Launch
		ok     bool
	}{
		{
			name:   "manual without external id",
			launch: &Launch{Date: date(2025, 1, 1), Provenance: ProvenanceManual},
			ok:     true,
		},
		{
			name:   "external with external id",
			launch: &Launch{Date: date(2025, 1, 2), Provenance: ProvenanceExternal, ExternalID: "ext-1"},
			ok:     true,
		},
		{
			name:   "manual with external id",
			launch: &Launch{Date: date(2025, 1, 3), Provenance: ProvenanceManual, ExternalID: "ext-2"},
			ok:     false,
		},
		{
			name:   "external without external id",
			launch: &Launch{Date: date(2025, 1, 4), Provenance: ProvenanceExternal},
			ok:     false,
		},
		{
			name:   "missing provenance",
			launch: &Launch{Date: date(2025, 1, 5)},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.InsertLaunch(tt.launch)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, errors.IsPersistence(err))
			}
		})
	}
}

func TestManualLaunchInvisibleToExternalLookup(t *testing.T) {
	store := New()
	manual := &Launch{Date: date(2025, 3, 1), Mission: "Desk Entry", Provenance: ProvenanceManual}
	require.NoError(t, store.InsertLaunch(manual))

	_, found := store.FindLaunchByExternalID("")
	assert.False(t, found, "empty external id must never match")

	external := &Launch{Date: date(2025, 3, 2), Provenance: ProvenanceExternal, ExternalID: "ext-77"}
	require.NoError(t, store.InsertLaunch(external))

	got, found := store.FindLaunchByExternalID("ext-77")
	require.True(t, found)
	assert.Equal(t, external.ID, got.ID)
}

func TestDuplicateExternalIDRejected(t *testing.T) {
	store := New()
	require.NoError(t, store.InsertLaunch(&Launch{
		Date: date(2025, 4, 1), Provenance: ProvenanceExternal, ExternalID: "dup",
	}))

	err := store.InsertLaunch(&Launch{
		Date: date(2025, 4, 2), Provenance: ProvenanceExternal, ExternalID: "dup",
	})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestUpdateLaunchImmutableProvenance(t *testing.T) {
	store := New()
	launch := &Launch{Date: date(2025, 5, 1), Provenance: ProvenanceExternal, ExternalID: "ext-5"}
	require.NoError(t, store.InsertLaunch(launch))

	mutated := launch.Copy()
	mutated.Provenance = ProvenanceManual
	mutated.ExternalID = ""
	assert.Error(t, store.UpdateLaunch(mutated))

	renamed := launch.Copy()
	renamed.ExternalID = "ext-other"
	assert.Error(t, store.UpdateLaunch(renamed))

	edited := launch.Copy()
	edited.Mission = "Renamed Mission"
	assert.NoError(t, store.UpdateLaunch(edited))
}

func TestReadsReturnCopies(t *testing.T) {
	store := New()
	launch := &Launch{Date: date(2025, 6, 1), Mission: "Original", Provenance: ProvenanceManual}
	require.NoError(t, store.InsertLaunch(launch))

	got, err := store.Launch(launch.ID)
	require.NoError(t, err)
	got.Mission = "Tampered"

	again, err := store.Launch(launch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Mission, "reads must hand out copies")
}

func TestFindSiteByExternalIDOrName(t *testing.T) {
	store := New()
	site := &Site{Kind: SiteKindLaunch, Location: "Cape Canaveral", Pad: "SLC-40", Country: "US", ExternalID: "pad-80"}
	require.NoError(t, store.AddSite(site))
	drop := &Site{Kind: SiteKindReentry, Location: "Cape Canaveral", Pad: "SLC-40"}
	require.NoError(t, store.AddSite(drop))

	byExt, found := store.FindSiteByExternalIDOrName(SiteKindLaunch, "pad-80", "", "")
	require.True(t, found)
	assert.Equal(t, site.ID, byExt.ID)

	byName, found := store.FindSiteByExternalIDOrName(SiteKindLaunch, "", "cape canaveral", "slc-40")
	require.True(t, found)
	assert.Equal(t, site.ID, byName.ID, "name lookup must ignore case")

	// The kind narrows the search: a drop zone never matches a pad query.
	reentrySite, found := store.FindSiteByExternalIDOrName(SiteKindReentry, "", "Cape Canaveral", "SLC-40")
	require.True(t, found)
	assert.Equal(t, drop.ID, reentrySite.ID)

	_, found = store.FindSiteByExternalIDOrName(SiteKindLaunch, "", "Vandenberg", "SLC-4E")
	assert.False(t, found)
}

func TestFindRocketByExternalIDOrName(t *testing.T) {
	store := New()
	rocket := &Rocket{Name: "Falcon 9", Family: "Falcon", ExternalID: "cfg-164"}
	require.NoError(t, store.AddRocket(rocket))

	byExt, found := store.FindRocketByExternalIDOrName("cfg-164", "")
	require.True(t, found)
	assert.Equal(t, rocket.ID, byExt.ID)

	byName, found := store.FindRocketByExternalIDOrName("", "falcon 9")
	require.True(t, found)
	assert.Equal(t, rocket.ID, byName.ID)
}

func TestSyncLogAppendOnly(t *testing.T) {
	store := New()

	first := &SyncRecord{Timestamp: utc.Now(), Mode: SyncModeUpcoming, Status: SyncStatusError, ErrorDetail: "feed unreachable"}
	require.NoError(t, store.AppendSyncRecord(first))
	assert.NotEmpty(t, first.ID)

	second := &SyncRecord{Timestamp: utc.Now(), Mode: SyncModeUpcoming, Added: 3, Status: SyncStatusSuccess}
	require.NoError(t, store.AppendSyncRecord(second))

	history := store.SyncHistory()
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, second.ID, history[1].ID)

	last, found := store.LastSync(SyncModeUpcoming)
	require.True(t, found)
	assert.Equal(t, second.ID, last.ID, "LastSync returns the latest successful run")

	_, found = store.LastSync(SyncModePrevious)
	assert.False(t, found)
}

func TestReentryStoreRoundTrip(t *testing.T) {
	store := New()
	reentry := &Reentry{
		Date:             date(2025, 7, 10),
		VehicleComponent: "First Stage",
		ReentryType:      "propulsive",
		Provenance:       ProvenanceExternal,
		ExternalID:       "re-1",
	}
	require.NoError(t, store.InsertReentry(reentry))

	got, found := store.FindReentryByExternalID("re-1")
	require.True(t, found)
	assert.Equal(t, "First Stage", got.VehicleComponent)
}

func TestLaunchesListedByDateThenMission(t *testing.T) {
	store := New()
	missions := []struct {
		date    utc.Time
		mission string
	}{
		{date(2025, 6, 3), "Crew-11"},
		{date(2025, 6, 1), "Starlink Group 6-2"},
		{date(2025, 6, 1), "Starlink Group 6-1"},
	}
	for _, m := range missions {
		require.NoError(t, store.InsertLaunch(&Launch{
			Date:       m.date,
			Mission:    m.mission,
			Provenance: ProvenanceManual,
		}))
	}

	listed := store.Launches()
	require.Len(t, listed, 3)
	assert.Equal(t, "Starlink Group 6-1", listed[0].Mission, "same-day launches fall back to mission order")
	assert.Equal(t, "Starlink Group 6-2", listed[1].Mission)
	assert.Equal(t, "Crew-11", listed[2].Mission)
}

func TestSetConflictLeavesExternalIndexIntact(t *testing.T) {
	launches := NewLaunches()
	first := &Launch{ID: "id-1", ExternalID: "ext-1", Provenance: ProvenanceExternal}
	second := &Launch{ID: "id-2", ExternalID: "ext-2", Provenance: ProvenanceExternal}
	require.NoError(t, launches.Add(first))
	require.NoError(t, launches.Add(second))

	clash := &Launch{ID: "id-2", ExternalID: "ext-1", Provenance: ProvenanceExternal}
	err := launches.Set("id-2", clash)
	require.ErrorIs(t, err, errors.ErrAlreadyExists)

	got, found := launches.GetByExternalID("ext-2")
	require.True(t, found, "a rejected replacement must not drop the stored index entry")
	assert.Equal(t, LaunchID("id-2"), got.ID)
}

func TestReentrySetConflictLeavesExternalIndexIntact(t *testing.T) {
	reentries := NewReentries()
	require.NoError(t, reentries.Add(&Reentry{ID: "id-1", ExternalID: "re-1", Provenance: ProvenanceExternal}))
	require.NoError(t, reentries.Add(&Reentry{ID: "id-2", ExternalID: "re-2", Provenance: ProvenanceExternal}))

	err := reentries.Set("id-2", &Reentry{ID: "id-2", ExternalID: "re-1", Provenance: ProvenanceExternal})
	require.ErrorIs(t, err, errors.ErrAlreadyExists)

	got, found := reentries.GetByExternalID("re-2")
	require.True(t, found)
	assert.Equal(t, ReentryID("id-2"), got.ID)
}
