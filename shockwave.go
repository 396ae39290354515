// Package shockwave is the planning facade: one handle that owns the
// store, talks to the external launch feed, and exposes the sync,
// scheduling, and statistics operations the CLI and embedding programs
// use.
package shockwave

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	internalfeed "github.com/remixastro/shockwave/internal/feed"
	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
	"github.com/remixastro/shockwave/pkg/schedule"
	"github.com/remixastro/shockwave/pkg/stats"
	"github.com/remixastro/shockwave/pkg/sync"
)

// Shockwave is a planning desk over one store and one feed.
type Shockwave interface {
	// Store exposes the underlying planning store.
	Store() planner.Store

	// Sync runs one synchronization session for the given mode and
	// returns its audit record.
	Sync(ctx context.Context, mode planner.SyncMode, params feed.Params) (*planner.SyncRecord, error)

	// Windows computes site occupancy windows for everything currently
	// in the store.
	Windows(config schedule.DurationConfig, keyFn schedule.KeyFn) *schedule.Grouping

	// Stats summarizes the store contents.
	Stats() *stats.Summary

	// History returns the sync audit log, oldest first.
	History() []*planner.SyncRecord

	// Save writes the store snapshot back to its configured path. A
	// no-op when no path is configured.
	Save() error
}

// shockwave is the internal implementation of the Shockwave interface.
type shockwave struct {
	store  planner.Store
	client feed.Client
	config *config
	logger zerolog.Logger
}

// New creates a Shockwave instance with the given options.
func New(opts ...Option) (Shockwave, error) {
	sw := &shockwave{config: defaultConfig()}
	if err := sw.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	sw.logger = sw.config.logger

	switch {
	case sw.config.store != nil:
		sw.store = sw.config.store
	case sw.config.path != "":
		store, err := planner.NewFromPath(sw.config.path)
		if err != nil {
			return nil, fmt.Errorf("loading store: %w", err)
		}
		sw.store = store
	default:
		sw.store = planner.New()
	}

	if sw.config.client != nil {
		sw.client = sw.config.client
	} else {
		feedOpts := []internalfeed.Option{internalfeed.WithLogger(sw.logger)}
		if sw.config.feedURL != "" {
			feedOpts = append(feedOpts, internalfeed.WithBaseURL(sw.config.feedURL))
		}
		if sw.config.apiKey != "" {
			feedOpts = append(feedOpts, internalfeed.WithAuth(&internalfeed.BearerAuth{}, sw.config.apiKey))
		}
		if sw.config.timeout > 0 {
			feedOpts = append(feedOpts, internalfeed.WithTimeout(sw.config.timeout))
		}
		sw.client = internalfeed.New(feedOpts...)
	}

	return sw, nil
}

// Store exposes the underlying planning store.
func (s *shockwave) Store() planner.Store {
	return s.store
}

// Sync runs one synchronization session.
func (s *shockwave) Sync(ctx context.Context, mode planner.SyncMode, params feed.Params) (*planner.SyncRecord, error) {
	session, err := sync.New(
		sync.WithClient(s.client),
		sync.WithStore(s.store),
		sync.WithTimeout(s.config.timeout),
		sync.WithReentries(s.config.reentries),
		sync.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	return session.Run(ctx, mode, params)
}

// Windows computes occupancy windows from the store contents.
func (s *shockwave) Windows(config schedule.DurationConfig, keyFn schedule.KeyFn) *schedule.Grouping {
	return schedule.Compute(schedule.EventsFromStore(s.store), config, keyFn)
}

// Stats summarizes the store contents.
func (s *shockwave) Stats() *stats.Summary {
	return stats.Compute(s.store)
}

// History returns the sync audit log.
func (s *shockwave) History() []*planner.SyncRecord {
	return s.store.SyncHistory()
}

// Save persists the store when a path is configured.
func (s *shockwave) Save() error {
	if s.config.path == "" {
		return nil
	}
	p, ok := s.store.(planner.Persistence)
	if !ok {
		return fmt.Errorf("store does not support persistence")
	}
	return p.Save(s.config.path)
}
