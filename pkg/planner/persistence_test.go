package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")

	store := newStore()
	site := &Site{Kind: SiteKindLaunch, Location: "Jiuquan", Pad: "LA-4", Country: "CN"}
	require.NoError(t, store.AddSite(site))
	rocket := &Rocket{Name: "Long March 2F", ExternalID: "cfg-92"}
	require.NoError(t, store.AddRocket(rocket))
	require.NoError(t, store.InsertLaunch(&Launch{
		Date:       date(2025, 9, 12),
		SiteID:     site.ID,
		RocketID:   rocket.ID,
		Mission:    "Shenzhou 21",
		Provenance: ProvenanceExternal,
		ExternalID: "ext-cn-1",
	}))
	require.NoError(t, store.AppendSyncRecord(&SyncRecord{
		Timestamp: utc.Now(),
		Mode:      SyncModeUpcoming,
		Added:     1,
		Status:    SyncStatusSuccess,
	}))

	require.NoError(t, store.Save(path))

	loaded, err := NewFromPath(path)
	require.NoError(t, err)

	assert.Len(t, loaded.Launches(), 1)
	assert.Len(t, loaded.Sites(), 1)
	assert.Len(t, loaded.Rockets(), 1)
	assert.Len(t, loaded.SyncHistory(), 1)

	launch, found := loaded.FindLaunchByExternalID("ext-cn-1")
	require.True(t, found)
	assert.Equal(t, "Shenzhou 21", launch.Mission)
	assert.Equal(t, site.ID, launch.SiteID)
}

func TestNewFromPathMissingFile(t *testing.T) {
	store, err := NewFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, store.Launches(), "missing snapshot yields an empty store")
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("launches: {not: [a, list"), 0o644))

	_, err := NewFromPath(path)
	assert.Error(t, err)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "planner.yaml")
	store := newStore()
	require.NoError(t, store.Save(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
