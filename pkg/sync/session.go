// Package sync orchestrates one synchronization session: fetch the
// external feed, normalize each payload, reconcile it into the store,
// and append exactly one durable audit record describing the run.
//
// Per-record failures are tallied, never propagated; only a fetch
// failure, a store outage, or cancellation ends the run early, and even
// then the audit record is written first.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave/pkg/errors"
	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
	"github.com/remixastro/shockwave/pkg/reconcile"
)

// Session runs sync sessions against one store and one feed client.
// Sessions are safe for sequential reuse; Run is not safe to call
// concurrently against the same store.
type Session struct {
	client    feed.Client
	store     planner.Store
	timeout   time.Duration
	reentries bool
	logger    zerolog.Logger
	now       func() utc.Time
}

// New returns a Session. A client and a store are required.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		logger: zerolog.Nop(),
		now:    utc.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		return nil, errors.NewValidationError("client", nil, "a feed client is required")
	}
	if s.store == nil {
		return nil, errors.NewValidationError("store", nil, "a store is required")
	}
	return s, nil
}

// tally accumulates per-record outcomes over the run.
type tally struct {
	added     int
	updated   int
	unchanged int
	failed    int

	firstFailure string
}

func (t *tally) record(outcome reconcile.Outcome) {
	switch outcome {
	case reconcile.OutcomeInserted:
		t.added++
	case reconcile.OutcomeUpdated:
		t.updated++
	default:
		t.unchanged++
	}
}

func (t *tally) fail(err error) {
	t.failed++
	if t.firstFailure == "" && err != nil {
		t.firstFailure = err.Error()
	}
}

func (t *tally) applied() int {
	return t.added + t.updated + t.unchanged
}

// Run executes one session for the given mode. It always appends
// exactly one SyncRecord to the store's sync history, whatever happens,
// and returns that record. The returned error is non-nil only for
// session-fatal conditions: the fetch failed, the store refused the
// writes wholesale, or the context was canceled. Per-record failures
// surface in the record's failed count and status, not as an error.
func (s *Session) Run(ctx context.Context, mode planner.SyncMode, params feed.Params) (*planner.SyncRecord, error) {
	if !mode.Valid() {
		return nil, errors.NewValidationError("mode", mode, "unknown sync mode")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rec := &planner.SyncRecord{
		Timestamp: s.now(),
		Mode:      mode,
	}
	logger := s.logger.With().Str("mode", string(mode)).Logger()
	logger.Info().Msg("sync session started")

	launches, err := s.client.Launches(ctx, mode, params)
	if err != nil {
		return s.abort(rec, fmt.Errorf("fetching launches: %w", err))
	}

	var reentries []feed.ReentryPayload
	if s.reentries {
		reentries, err = s.client.Reentries(ctx, mode, params)
		if err != nil {
			return s.abort(rec, fmt.Errorf("fetching reentries: %w", err))
		}
	}

	r := reconcile.New(s.store, reconcile.WithLogger(logger))
	var t tally

	for i := range launches {
		if err := ctx.Err(); err != nil {
			return s.abortCanceled(rec, &t, err)
		}
		draft, err := feed.NormalizeLaunch(launches[i])
		if err != nil {
			t.fail(err)
			logger.Warn().Err(err).Msg("skipping malformed launch payload")
			continue
		}
		outcome, err := r.Launch(draft)
		if err != nil {
			if errors.IsSessionFatal(err) {
				return s.abortWith(rec, &t, err)
			}
			t.fail(err)
			logger.Warn().Err(err).Str("external_id", draft.ExternalID).Msg("launch rejected")
			continue
		}
		t.record(outcome)
	}

	for i := range reentries {
		if err := ctx.Err(); err != nil {
			return s.abortCanceled(rec, &t, err)
		}
		draft, err := feed.NormalizeReentry(reentries[i])
		if err != nil {
			t.fail(err)
			logger.Warn().Err(err).Msg("skipping malformed reentry payload")
			continue
		}
		outcome, err := r.Reentry(draft)
		if err != nil {
			if errors.IsSessionFatal(err) {
				return s.abortWith(rec, &t, err)
			}
			t.fail(err)
			logger.Warn().Err(err).Str("external_id", draft.ExternalID).Msg("reentry rejected")
			continue
		}
		t.record(outcome)
	}

	s.finalize(rec, &t)
	if err := s.append(rec); err != nil {
		return rec, err
	}
	logger.Info().
		Int("added", rec.Added).
		Int("updated", rec.Updated).
		Int("unchanged", rec.Unchanged).
		Int("failed", rec.Failed).
		Str("status", string(rec.Status)).
		Msg("sync session finished")
	return rec, nil
}

// finalize copies the tally into the record and derives the status.
func (s *Session) finalize(rec *planner.SyncRecord, t *tally) {
	rec.Added = t.added
	rec.Updated = t.updated
	rec.Unchanged = t.unchanged
	rec.Failed = t.failed

	switch {
	case t.failed == 0:
		rec.Status = planner.SyncStatusSuccess
	case t.applied() > 0:
		rec.Status = planner.SyncStatusPartial
		rec.ErrorDetail = fmt.Sprintf("%d of %d records failed; first: %s",
			t.failed, rec.Total(), t.firstFailure)
	default:
		rec.Status = planner.SyncStatusError
		rec.ErrorDetail = fmt.Sprintf("all %d records failed; first: %s",
			t.failed, t.firstFailure)
	}
}

// abort writes an error-status record for a run that failed before any
// reconciliation happened and returns the fatal error.
func (s *Session) abort(rec *planner.SyncRecord, err error) (*planner.SyncRecord, error) {
	rec.Status = planner.SyncStatusError
	if errors.IsCanceled(err) {
		rec.ErrorDetail = "canceled during fetch: " + err.Error()
	} else {
		rec.ErrorDetail = err.Error()
	}
	if appendErr := s.append(rec); appendErr != nil {
		s.logger.Error().Err(appendErr).Msg("sync audit record lost")
	}
	return rec, err
}

// abortCanceled writes an error-status record for a run canceled
// between records. Counts reflect the records applied before the
// cancellation; those writes stand.
func (s *Session) abortCanceled(rec *planner.SyncRecord, t *tally, cause error) (*planner.SyncRecord, error) {
	rec.Added = t.added
	rec.Updated = t.updated
	rec.Unchanged = t.unchanged
	rec.Failed = t.failed
	rec.Status = planner.SyncStatusError
	rec.ErrorDetail = fmt.Sprintf("canceled after %d records: %s", t.applied(), cause)
	if appendErr := s.append(rec); appendErr != nil {
		s.logger.Error().Err(appendErr).Msg("sync audit record lost")
	}
	return rec, errors.WrapCanceled(cause)
}

// abortWith writes an error-status record for a session-fatal
// mid-batch failure, e.g. the store going read-only.
func (s *Session) abortWith(rec *planner.SyncRecord, t *tally, cause error) (*planner.SyncRecord, error) {
	rec.Added = t.added
	rec.Updated = t.updated
	rec.Unchanged = t.unchanged
	rec.Failed = t.failed
	rec.Status = planner.SyncStatusError
	rec.ErrorDetail = cause.Error()
	if appendErr := s.append(rec); appendErr != nil {
		s.logger.Error().Err(appendErr).Msg("sync audit record lost")
	}
	return rec, cause
}

func (s *Session) append(rec *planner.SyncRecord) error {
	return s.store.AppendSyncRecord(rec)
}
