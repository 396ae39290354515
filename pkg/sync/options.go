package sync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

// Option configures a Session.
type Option func(*Session)

// WithClient sets the feed client the session fetches from. Required.
func WithClient(client feed.Client) Option {
	return func(s *Session) {
		s.client = client
	}
}

// WithStore sets the store the session reconciles into. Required.
func WithStore(store planner.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithTimeout bounds the whole run. Zero means no deadline beyond the
// caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.timeout = timeout
	}
}

// WithReentries makes the session fetch and reconcile re-entry events
// after the launches.
func WithReentries(enabled bool) Option {
	return func(s *Session) {
		s.reentries = enabled
	}
}

// WithLogger sets the logger for session progress events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
