package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/errors"
	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

// fakeClient serves canned payloads and can fail or cancel on demand.
type fakeClient struct {
	launches  []feed.LaunchPayload
	reentries []feed.ReentryPayload
	err       error
	onFetch   func()
}

func (f *fakeClient) Launches(_ context.Context, _ planner.SyncMode, _ feed.Params) ([]feed.LaunchPayload, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.launches, f.err
}

func (f *fakeClient) Reentries(_ context.Context, _ planner.SyncMode, _ feed.Params) ([]feed.ReentryPayload, error) {
	return f.reentries, f.err
}

func launchPayload(id, mission string) feed.LaunchPayload {
	return feed.LaunchPayload{
		ID:   id,
		Name: "Falcon 9 | " + mission,
		NET:  "2025-06-01T08:30:00Z",
		Pad: &feed.PadPayload{
			ID:   80,
			Name: "SLC-40",
			Location: &feed.LocationPayload{
				Name:        "Cape Canaveral SFS",
				CountryCode: "US",
			},
		},
	}
}

func newSession(t *testing.T, client feed.Client, store planner.Store, opts ...Option) *Session {
	t.Helper()
	s, err := New(append([]Option{WithClient(client), WithStore(store)}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestNewRequiresClientAndStore(t *testing.T) {
	_, err := New(WithStore(planner.New()))
	require.Error(t, err)

	_, err = New(WithClient(&fakeClient{}))
	require.Error(t, err)
}

func TestRunSuccess(t *testing.T) {
	store := planner.New()
	client := &fakeClient{launches: []feed.LaunchPayload{
		launchPayload("ext-1", "Starlink 6-1"),
		launchPayload("ext-2", "Starlink 6-2"),
	}}
	s := newSession(t, client, store)

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	assert.Equal(t, planner.SyncStatusSuccess, rec.Status)
	assert.Equal(t, 2, rec.Added)
	assert.Zero(t, rec.Failed)
	assert.Empty(t, rec.ErrorDetail)

	history := store.SyncHistory()
	require.Len(t, history, 1)
	assert.Equal(t, planner.SyncModeUpcoming, history[0].Mode)
	assert.Len(t, store.Launches(), 2)
}

func TestRunIdempotent(t *testing.T) {
	store := planner.New()
	client := &fakeClient{launches: []feed.LaunchPayload{
		launchPayload("ext-1", "Starlink 6-1"),
	}}
	s := newSession(t, client, store)

	_, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	assert.Equal(t, planner.SyncStatusSuccess, rec.Status)
	assert.Zero(t, rec.Added)
	assert.Equal(t, 1, rec.Unchanged)
	assert.Len(t, store.Launches(), 1)
	assert.Len(t, store.SyncHistory(), 2)
}

func TestRunPartialFailure(t *testing.T) {
	store := planner.New()
	bad := launchPayload("", "No ID")
	client := &fakeClient{launches: []feed.LaunchPayload{
		launchPayload("ext-1", "Starlink 6-1"),
		bad,
	}}
	s := newSession(t, client, store)

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err, "per-record failures never escape the session")
	assert.Equal(t, planner.SyncStatusPartial, rec.Status)
	assert.Equal(t, 1, rec.Added)
	assert.Equal(t, 1, rec.Failed)
	assert.NotEmpty(t, rec.ErrorDetail)

	// the good record still landed
	assert.Len(t, store.Launches(), 1)
}

func TestRunAllFailed(t *testing.T) {
	store := planner.New()
	client := &fakeClient{launches: []feed.LaunchPayload{
		launchPayload("", "No ID"),
		{ID: "ext-9", NET: "garbage"},
	}}
	s := newSession(t, client, store)

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	assert.Equal(t, planner.SyncStatusError, rec.Status)
	assert.Equal(t, 2, rec.Failed)
	assert.Empty(t, store.Launches())
	assert.Len(t, store.SyncHistory(), 1)
}

func TestRunFetchFailureStillAudited(t *testing.T) {
	store := planner.New()
	client := &fakeClient{err: errors.NewTransportError("launch-feed", "/launch/upcoming/", 503, nil)}
	s := newSession(t, client, store)

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))

	require.NotNil(t, rec)
	assert.Equal(t, planner.SyncStatusError, rec.Status)
	assert.NotEmpty(t, rec.ErrorDetail)
	assert.Empty(t, store.Launches())

	history := store.SyncHistory()
	require.Len(t, history, 1, "the audit record survives a dead feed")
	assert.Equal(t, planner.SyncStatusError, history[0].Status)
}

func TestRunCanceledBetweenRecords(t *testing.T) {
	store := planner.New()
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		launches: []feed.LaunchPayload{
			launchPayload("ext-1", "Starlink 6-1"),
			launchPayload("ext-2", "Starlink 6-2"),
		},
		// cancel lands after the fetch, before the first record
		onFetch: cancel,
	}
	s := newSession(t, client, store)

	rec, err := s.Run(ctx, planner.SyncModeUpcoming, feed.Params{})
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))

	require.NotNil(t, rec)
	assert.Equal(t, planner.SyncStatusError, rec.Status)
	assert.Contains(t, rec.ErrorDetail, "canceled")
	assert.Len(t, store.SyncHistory(), 1)
	assert.Empty(t, store.Launches(), "no record applied after the cancellation point")
}

func TestRunInvalidMode(t *testing.T) {
	s := newSession(t, &fakeClient{}, planner.New())
	_, err := s.Run(context.Background(), planner.SyncMode("sideways"), feed.Params{})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRunWithReentries(t *testing.T) {
	store := planner.New()
	client := &fakeClient{
		launches: []feed.LaunchPayload{launchPayload("ext-1", "Starlink 6-1")},
		reentries: []feed.ReentryPayload{{
			ID:        "re-1",
			Component: "First Stage",
			Epoch:     "2025-06-01T10:00:00Z",
			Zone: &feed.PadPayload{
				Name:     "JRTI Drop Zone",
				Location: &feed.LocationPayload{Name: "Atlantic Ocean"},
			},
			LaunchID: "ext-1",
		}},
	}
	s := newSession(t, client, store, WithReentries(true))

	rec, err := s.Run(context.Background(), planner.SyncModeUpcoming, feed.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Added)
	assert.Len(t, store.Reentries(), 1)
}
