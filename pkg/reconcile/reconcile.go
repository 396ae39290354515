// Package reconcile merges normalized feed drafts into the local store.
//
// The reconciler owns the merge policy: externally sourced fields are
// overwritten from the feed on every visit, local overlay fields
// (NOTAM reference, remarks) are never touched, and manual records are
// never candidates for a merge. Each draft is applied atomically; a
// draft that fails leaves the store exactly as it was.
package reconcile

import (
	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave/pkg/errors"
	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

// Outcome reports what a single reconciliation did to the store.
type Outcome int

const (
	// OutcomeUnchanged means the record existed and no externally
	// sourced field differed. The last-synced timestamp still advances.
	OutcomeUnchanged Outcome = iota
	// OutcomeInserted means a new externally sourced record was created.
	OutcomeInserted
	// OutcomeUpdated means an existing record had at least one
	// externally sourced field rewritten.
	OutcomeUpdated
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Reconciler applies feed drafts to a store.
type Reconciler struct {
	store  planner.Store
	logger zerolog.Logger
	now    func() utc.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for per-record merge events.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() utc.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// New returns a Reconciler bound to the given store.
func New(store planner.Store, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:  store,
		logger: zerolog.Nop(),
		now:    utc.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Launch merges one launch draft into the store. A draft whose external
// id matches an existing externally sourced launch updates that launch;
// otherwise a new record is inserted. Manual launches are invisible to
// the match, so a feed record can coexist with a manual record for the
// same event.
func (r *Reconciler) Launch(draft *feed.LaunchDraft) (Outcome, error) {
	if draft == nil || draft.ExternalID == "" {
		return OutcomeUnchanged, errors.NewMalformedRecordError("", "external_id", "draft without a feed identifier")
	}

	siteID, err := r.resolveSite(draft.ExternalID, planner.SiteKindLaunch, draft.Site)
	if err != nil {
		return OutcomeUnchanged, err
	}
	rocketID, err := r.resolveRocket(draft.ExternalID, draft.Rocket)
	if err != nil {
		return OutcomeUnchanged, err
	}

	now := r.now()
	existing, ok := r.store.FindLaunchByExternalID(draft.ExternalID)
	if !ok {
		launch := &planner.Launch{
			Provenance: planner.ProvenanceExternal,
			ExternalID: draft.ExternalID,
			LastSynced: &now,
		}
		applyLaunchDraft(launch, draft, siteID, rocketID)
		if err := r.store.InsertLaunch(launch); err != nil {
			return OutcomeUnchanged, err
		}
		r.logger.Debug().
			Str("external_id", draft.ExternalID).
			Str("mission", launch.Mission).
			Msg("launch inserted")
		return OutcomeInserted, nil
	}

	changed := applyLaunchDraft(existing, draft, siteID, rocketID)
	existing.LastSynced = &now
	if err := r.store.UpdateLaunch(existing); err != nil {
		return OutcomeUnchanged, err
	}
	if !changed {
		return OutcomeUnchanged, nil
	}
	r.logger.Debug().
		Str("external_id", draft.ExternalID).
		Str("mission", existing.Mission).
		Msg("launch updated")
	return OutcomeUpdated, nil
}

// Reentry merges one re-entry draft into the store. The draft's launch
// back-reference is resolved best effort: if no externally sourced
// launch carries that id yet, the re-entry is stored without the link
// and a later sync pass can fill it in.
func (r *Reconciler) Reentry(draft *feed.ReentryDraft) (Outcome, error) {
	if draft == nil || draft.ExternalID == "" {
		return OutcomeUnchanged, errors.NewMalformedRecordError("", "external_id", "draft without a feed identifier")
	}

	siteID, err := r.resolveSite(draft.ExternalID, planner.SiteKindReentry, draft.Site)
	if err != nil {
		return OutcomeUnchanged, err
	}
	var launchID planner.LaunchID
	if draft.LaunchExternalID != "" {
		if parent, ok := r.store.FindLaunchByExternalID(draft.LaunchExternalID); ok {
			launchID = parent.ID
		}
	}

	now := r.now()
	existing, ok := r.store.FindReentryByExternalID(draft.ExternalID)
	if !ok {
		reentry := &planner.Reentry{
			Provenance: planner.ProvenanceExternal,
			ExternalID: draft.ExternalID,
			LastSynced: &now,
		}
		applyReentryDraft(reentry, draft, siteID, launchID)
		if err := r.store.InsertReentry(reentry); err != nil {
			return OutcomeUnchanged, err
		}
		r.logger.Debug().
			Str("external_id", draft.ExternalID).
			Str("component", reentry.VehicleComponent).
			Msg("reentry inserted")
		return OutcomeInserted, nil
	}

	changed := applyReentryDraft(existing, draft, siteID, launchID)
	existing.LastSynced = &now
	if err := r.store.UpdateReentry(existing); err != nil {
		return OutcomeUnchanged, err
	}
	if !changed {
		return OutcomeUnchanged, nil
	}
	return OutcomeUpdated, nil
}

// resolveSite finds or creates the site a draft refers to. Matching is
// two stage: external id first, then a case-folded location+pad match
// narrowed to the site kind. A reference that matches nothing becomes a
// new site so the event never dangles.
func (r *Reconciler) resolveSite(recordID string, kind planner.SiteKind, ref feed.SiteRef) (planner.SiteID, error) {
	if ref.ExternalID == "" && ref.Location == "" && ref.Pad == "" {
		return "", errors.NewUnresolvedReferenceError(recordID, "site", "")
	}
	if site, ok := r.store.FindSiteByExternalIDOrName(kind, ref.ExternalID, ref.Location, ref.Pad); ok {
		return site.ID, nil
	}

	site := &planner.Site{
		Kind:       kind,
		Location:   ref.Location,
		Pad:        ref.Pad,
		Country:    ref.Country,
		Latitude:   ref.Latitude,
		Longitude:  ref.Longitude,
		ExternalID: ref.ExternalID,
	}
	if err := r.store.AddSite(site); err != nil {
		return "", errors.NewUnresolvedReferenceError(recordID, "site", ref.Location)
	}
	r.logger.Debug().
		Str("location", site.Location).
		Str("pad", site.Pad).
		Msg("site created from feed reference")
	return site.ID, nil
}

// resolveRocket finds or creates the rocket a draft refers to. A nil
// reference is legal; the launch is stored without a rocket.
func (r *Reconciler) resolveRocket(recordID string, ref *feed.RocketRef) (planner.RocketID, error) {
	if ref == nil {
		return "", nil
	}
	if rocket, ok := r.store.FindRocketByExternalIDOrName(ref.ExternalID, ref.Name); ok {
		return rocket.ID, nil
	}

	rocket := &planner.Rocket{
		Name:       ref.Name,
		Family:     ref.Family,
		Variant:    ref.Variant,
		ExternalID: ref.ExternalID,
	}
	if err := r.store.AddRocket(rocket); err != nil {
		return "", errors.NewUnresolvedReferenceError(recordID, "rocket", ref.Name)
	}
	r.logger.Debug().
		Str("name", rocket.Name).
		Msg("rocket created from feed reference")
	return rocket.ID, nil
}

// applyLaunchDraft overwrites the externally sourced fields of launch
// from the draft and reports whether anything differed. Overlay fields
// and provenance are left alone.
func applyLaunchDraft(launch *planner.Launch, draft *feed.LaunchDraft, siteID planner.SiteID, rocketID planner.RocketID) bool {
	changed := false

	if !launch.Date.Equal(draft.Date) {
		launch.Date = draft.Date
		changed = true
	}
	if !timePtrEqual(launch.WindowStart, draft.WindowStart) {
		launch.WindowStart = draft.WindowStart
		changed = true
	}
	if !timePtrEqual(launch.WindowEnd, draft.WindowEnd) {
		launch.WindowEnd = draft.WindowEnd
		changed = true
	}
	if launch.SiteID != siteID {
		launch.SiteID = siteID
		changed = true
	}
	if launch.RocketID != rocketID {
		launch.RocketID = rocketID
		changed = true
	}
	if launch.Mission != draft.Mission {
		launch.Mission = draft.Mission
		changed = true
	}
	if launch.Payload != draft.Payload {
		launch.Payload = draft.Payload
		changed = true
	}
	if launch.Orbit != draft.Orbit {
		launch.Orbit = draft.Orbit
		changed = true
	}
	if launch.Status != draft.Status {
		launch.Status = draft.Status
		changed = true
	}
	if !boolPtrEqual(launch.Success, draft.Success) {
		launch.Success = draft.Success
		changed = true
	}
	if launch.FailureReason != draft.FailReason {
		launch.FailureReason = draft.FailReason
		changed = true
	}
	if launch.SourceURL != draft.SourceURL {
		launch.SourceURL = draft.SourceURL
		changed = true
	}
	return changed
}

// applyReentryDraft overwrites the externally sourced fields of reentry
// from the draft and reports whether anything differed. An empty launch
// id never clears an existing link; the back-reference only tightens.
func applyReentryDraft(reentry *planner.Reentry, draft *feed.ReentryDraft, siteID planner.SiteID, launchID planner.LaunchID) bool {
	changed := false

	if !reentry.Date.Equal(draft.Date) {
		reentry.Date = draft.Date
		changed = true
	}
	if reentry.SiteID != siteID {
		reentry.SiteID = siteID
		changed = true
	}
	if launchID != "" && reentry.LaunchID != launchID {
		reentry.LaunchID = launchID
		changed = true
	}
	if reentry.VehicleComponent != draft.VehicleComponent {
		reentry.VehicleComponent = draft.VehicleComponent
		changed = true
	}
	if reentry.ReentryType != draft.ReentryType {
		reentry.ReentryType = draft.ReentryType
		changed = true
	}
	if reentry.Status != draft.Status {
		reentry.Status = draft.Status
		changed = true
	}
	return changed
}

func timePtrEqual(a, b *utc.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
