package stats

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/planner"
)

func date(year int, month time.Month, day int) utc.Time {
	return utc.Time{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func seedStore(t *testing.T) planner.Store {
	t.Helper()
	store := planner.New()

	site := &planner.Site{Kind: planner.SiteKindLaunch, Location: "Cape Canaveral SFS", Pad: "SLC-40"}
	require.NoError(t, store.AddSite(site))
	falcon := &planner.Rocket{Name: "Falcon 9"}
	require.NoError(t, store.AddRocket(falcon))

	add := func(status planner.Status, rocketID planner.RocketID) {
		require.NoError(t, store.InsertLaunch(&planner.Launch{
			Date:       date(2025, 6, 1),
			SiteID:     site.ID,
			RocketID:   rocketID,
			Mission:    "test",
			Status:     status,
			Provenance: planner.ProvenanceManual,
		}))
	}
	add(planner.StatusSuccess, falcon.ID)
	add(planner.StatusSuccess, falcon.ID)
	add(planner.StatusFailure, falcon.ID)
	add(planner.StatusScheduled, "")

	require.NoError(t, store.InsertReentry(&planner.Reentry{
		Date:       date(2025, 6, 2),
		Status:     planner.StatusScheduled,
		Provenance: planner.ProvenanceManual,
	}))
	return store
}

func TestComputeSummary(t *testing.T) {
	s := Compute(seedStore(t))

	assert.Equal(t, 4, s.TotalLaunches)
	assert.Equal(t, 1, s.TotalReentries)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Pending)
}

func TestComputeBreakdowns(t *testing.T) {
	s := Compute(seedStore(t))

	require.NotEmpty(t, s.ByRocket)
	assert.Equal(t, "Falcon 9", s.ByRocket[0].Name)
	assert.Equal(t, 3, s.ByRocket[0].Count)

	require.NotEmpty(t, s.BySite)
	assert.Equal(t, "Cape Canaveral SFS - SLC-40", s.BySite[0].Name)
	assert.Equal(t, 4, s.BySite[0].Count)

	require.NotEmpty(t, s.ByStatus)
	assert.Equal(t, string(planner.StatusSuccess), s.ByStatus[0].Name)
}

func TestComputeEmptyStore(t *testing.T) {
	s := Compute(planner.New())
	assert.Zero(t, s.TotalLaunches)
	assert.Empty(t, s.ByRocket)
}
