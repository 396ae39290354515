package shockwave

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
	"github.com/remixastro/shockwave/pkg/schedule"
)

type stubFeed struct {
	launches []feed.LaunchPayload
}

func (s *stubFeed) Launches(context.Context, planner.SyncMode, feed.Params) ([]feed.LaunchPayload, error) {
	return s.launches, nil
}

func (s *stubFeed) Reentries(context.Context, planner.SyncMode, feed.Params) ([]feed.ReentryPayload, error) {
	return nil, nil
}

func payload(id string) feed.LaunchPayload {
	return feed.LaunchPayload{
		ID:   id,
		Name: "Falcon 9 | Starlink",
		NET:  "2025-06-01T08:30:00Z",
		Pad: &feed.PadPayload{
			ID:       80,
			Name:     "SLC-40",
			Location: &feed.LocationPayload{Name: "Cape Canaveral SFS", CountryCode: "US"},
		},
	}
}

func TestNewDefaults(t *testing.T) {
	sw, err := New()
	require.NoError(t, err)
	assert.NotNil(t, sw.Store())
	assert.Empty(t, sw.History())
}

func TestSyncThroughFacade(t *testing.T) {
	sw, err := New(WithFeed(&stubFeed{launches: []feed.LaunchPayload{payload("ext-1")}}))
	require.NoError(t, err)

	rec, err := sw.Sync(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	assert.Equal(t, planner.SyncStatusSuccess, rec.Status)
	assert.Equal(t, 1, rec.Added)

	require.Len(t, sw.History(), 1)
	assert.Len(t, sw.Store().Launches(), 1)
}

func TestWindowsThroughFacade(t *testing.T) {
	sw, err := New(WithFeed(&stubFeed{launches: []feed.LaunchPayload{payload("ext-1")}}))
	require.NoError(t, err)
	_, err = sw.Sync(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)

	g := sw.Windows(schedule.DefaultDurations(), nil)
	require.Len(t, g.Groups(), 1)
	assert.Equal(t, "Cape Canaveral SFS - SLC-40", g.Groups()[0].Key)

	day := utc.Time{Time: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)}
	assert.Len(t, g.WindowsForDay(day, "Cape Canaveral SFS - SLC-40"), 1)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	sw, err := New(
		WithPath(path),
		WithFeed(&stubFeed{launches: []feed.LaunchPayload{payload("ext-1")}}),
	)
	require.NoError(t, err)
	_, err = sw.Sync(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	require.NoError(t, sw.Save())

	reloaded, err := New(WithPath(path))
	require.NoError(t, err)
	assert.Len(t, reloaded.Store().Launches(), 1)
	assert.Len(t, reloaded.History(), 1)
}

func TestSaveWithoutPathIsNoop(t *testing.T) {
	sw, err := New()
	require.NoError(t, err)
	assert.NoError(t, sw.Save())
}

func TestStatsThroughFacade(t *testing.T) {
	sw, err := New(WithFeed(&stubFeed{launches: []feed.LaunchPayload{payload("ext-1"), payload("ext-2")}}))
	require.NoError(t, err)
	_, err = sw.Sync(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)

	s := sw.Stats()
	assert.Equal(t, 2, s.TotalLaunches)
	assert.Equal(t, 2, s.Pending)
}
