package feed

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/planner"
)

// Params narrows a fetch. Limit caps the page size; the range bounds
// apply only to planner.SyncModeRange.
type Params struct {
	Limit      int
	RangeStart utc.Time
	RangeEnd   utc.Time
}

// Client fetches raw payloads from the external feed. The sync session
// depends on this interface so tests can inject a fake; the production
// implementation lives in internal/feed.
type Client interface {
	Launches(ctx context.Context, mode planner.SyncMode, params Params) ([]LaunchPayload, error)
	Reentries(ctx context.Context, mode planner.SyncMode, params Params) ([]ReentryPayload, error)
}
