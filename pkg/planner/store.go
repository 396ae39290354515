package planner

import (
	"sync"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Reader provides read access to the local store. All returned records
// are copies; mutating them does not touch the store.
type Reader interface {
	Launch(id LaunchID) (*Launch, error)
	Launches() []*Launch
	FindLaunchByExternalID(externalID string) (*Launch, bool)

	Reentry(id ReentryID) (*Reentry, error)
	Reentries() []*Reentry
	FindReentryByExternalID(externalID string) (*Reentry, bool)

	Site(id SiteID) (*Site, error)
	Sites() []*Site
	FindSiteByExternalIDOrName(kind SiteKind, externalID, location, pad string) (*Site, bool)

	Rocket(id RocketID) (*Rocket, error)
	Rockets() []*Rocket
	FindRocketByExternalIDOrName(externalID, name string) (*Rocket, bool)

	SyncHistory() []*SyncRecord
	LastSync(mode SyncMode) (*SyncRecord, bool)
}

// Writer provides write access to the local store. Each call validates
// and applies atomically; a rejected write leaves the store untouched.
type Writer interface {
	InsertLaunch(launch *Launch) error
	UpdateLaunch(launch *Launch) error

	InsertReentry(reentry *Reentry) error
	UpdateReentry(reentry *Reentry) error

	AddSite(site *Site) error
	AddRocket(rocket *Rocket) error

	AppendSyncRecord(record *SyncRecord) error
}

// Store combines read and write access to the local store.
type Store interface {
	Reader
	Writer
}

// Compile-time interface checks.
var (
	_ Store  = (*store)(nil)
	_ Reader = (*store)(nil)
	_ Writer = (*store)(nil)
)

// store is the in-memory Store implementation. All records are held as
// private copies; reads hand out copies so callers can only change the
// store through Writer calls.
type store struct {
	launches  *Launches
	reentries *Reentries
	sites     *Sites
	rockets   *Rockets

	mu      sync.RWMutex
	syncLog []*SyncRecord

	now func() utc.Time
}

// New creates an empty in-memory store.
func New() Store {
	return newStore()
}

func newStore() *store {
	return &store{
		launches:  NewLaunches(),
		reentries: NewReentries(),
		sites:     NewSites(),
		rockets:   NewRockets(),
		now:       utc.Now,
	}
}

// Launch returns a copy of the launch with the given id.
func (s *store) Launch(id LaunchID) (*Launch, error) {
	launch, ok := s.launches.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("launch", string(id))
	}
	return launch.Copy(), nil
}

// Launches returns copies of all launches ordered by date.
func (s *store) Launches() []*Launch {
	list := s.launches.List()
	out := make([]*Launch, len(list))
	for i, l := range list {
		out[i] = l.Copy()
	}
	return out
}

// FindLaunchByExternalID returns a copy of the launch carrying the given
// feed identifier. Manual launches are never found this way.
func (s *store) FindLaunchByExternalID(externalID string) (*Launch, bool) {
	launch, ok := s.launches.GetByExternalID(externalID)
	if !ok {
		return nil, false
	}
	return launch.Copy(), true
}

// InsertLaunch validates and adds a new launch, assigning an id when the
// caller did not provide one.
func (s *store) InsertLaunch(launch *Launch) error {
	if launch == nil {
		return errors.NewValidationError("launch", nil, "launch cannot be nil")
	}
	if err := launch.Validate(); err != nil {
		return errors.NewPersistenceError("insert", "launch", launch.ExternalID, err)
	}

	c := launch.Copy()
	if c.ID == "" {
		c.ID = LaunchID(uuid.NewString())
	}
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.launches.Add(c); err != nil {
		return errors.NewPersistenceError("insert", "launch", string(c.ID), err)
	}
	launch.ID = c.ID
	launch.CreatedAt = c.CreatedAt
	launch.UpdatedAt = c.UpdatedAt
	return nil
}

// UpdateLaunch validates and replaces an existing launch.
func (s *store) UpdateLaunch(launch *Launch) error {
	if launch == nil {
		return errors.NewValidationError("launch", nil, "launch cannot be nil")
	}
	prev, ok := s.launches.Get(launch.ID)
	if !ok {
		return errors.NewNotFoundError("launch", string(launch.ID))
	}
	// provenance and external id are immutable once set
	if launch.Provenance != prev.Provenance || launch.ExternalID != prev.ExternalID {
		return errors.NewPersistenceError("update", "launch", string(launch.ID),
			errors.NewValidationError("provenance", launch.Provenance, "provenance and external_id are immutable"))
	}
	if err := launch.Validate(); err != nil {
		return errors.NewPersistenceError("update", "launch", string(launch.ID), err)
	}

	c := launch.Copy()
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = s.now()
	if err := s.launches.Set(c.ID, c); err != nil {
		return errors.NewPersistenceError("update", "launch", string(c.ID), err)
	}
	launch.UpdatedAt = c.UpdatedAt
	return nil
}

// Reentry returns a copy of the re-entry with the given id.
func (s *store) Reentry(id ReentryID) (*Reentry, error) {
	reentry, ok := s.reentries.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("reentry", string(id))
	}
	return reentry.Copy(), nil
}

// Reentries returns copies of all re-entries ordered by date.
func (s *store) Reentries() []*Reentry {
	list := s.reentries.List()
	out := make([]*Reentry, len(list))
	for i, r := range list {
		out[i] = r.Copy()
	}
	return out
}

// FindReentryByExternalID returns a copy of the re-entry carrying the
// given feed identifier.
func (s *store) FindReentryByExternalID(externalID string) (*Reentry, bool) {
	reentry, ok := s.reentries.GetByExternalID(externalID)
	if !ok {
		return nil, false
	}
	return reentry.Copy(), true
}

// InsertReentry validates and adds a new re-entry.
func (s *store) InsertReentry(reentry *Reentry) error {
	if reentry == nil {
		return errors.NewValidationError("reentry", nil, "re-entry cannot be nil")
	}
	if err := reentry.Validate(); err != nil {
		return errors.NewPersistenceError("insert", "reentry", reentry.ExternalID, err)
	}

	c := reentry.Copy()
	if c.ID == "" {
		c.ID = ReentryID(uuid.NewString())
	}
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.reentries.Add(c); err != nil {
		return errors.NewPersistenceError("insert", "reentry", string(c.ID), err)
	}
	reentry.ID = c.ID
	reentry.CreatedAt = c.CreatedAt
	reentry.UpdatedAt = c.UpdatedAt
	return nil
}

// UpdateReentry validates and replaces an existing re-entry.
func (s *store) UpdateReentry(reentry *Reentry) error {
	if reentry == nil {
		return errors.NewValidationError("reentry", nil, "re-entry cannot be nil")
	}
	prev, ok := s.reentries.Get(reentry.ID)
	if !ok {
		return errors.NewNotFoundError("reentry", string(reentry.ID))
	}
	if reentry.Provenance != prev.Provenance || reentry.ExternalID != prev.ExternalID {
		return errors.NewPersistenceError("update", "reentry", string(reentry.ID),
			errors.NewValidationError("provenance", reentry.Provenance, "provenance and external_id are immutable"))
	}
	if err := reentry.Validate(); err != nil {
		return errors.NewPersistenceError("update", "reentry", string(reentry.ID), err)
	}

	c := reentry.Copy()
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = s.now()
	if err := s.reentries.Set(c.ID, c); err != nil {
		return errors.NewPersistenceError("update", "reentry", string(c.ID), err)
	}
	reentry.UpdatedAt = c.UpdatedAt
	return nil
}

// Site returns a copy of the site with the given id.
func (s *store) Site(id SiteID) (*Site, error) {
	site, ok := s.sites.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("site", string(id))
	}
	return site.Copy(), nil
}

// Sites returns copies of all sites.
func (s *store) Sites() []*Site {
	list := s.sites.List()
	out := make([]*Site, len(list))
	for i, site := range list {
		out[i] = site.Copy()
	}
	return out
}

// FindSiteByExternalIDOrName delegates to the site collection's
// two-stage lookup.
func (s *store) FindSiteByExternalIDOrName(kind SiteKind, externalID, location, pad string) (*Site, bool) {
	site, ok := s.sites.FindByExternalIDOrName(kind, externalID, location, pad)
	if !ok {
		return nil, false
	}
	return site.Copy(), true
}

// AddSite validates and adds a new site.
func (s *store) AddSite(site *Site) error {
	if site == nil {
		return errors.NewValidationError("site", nil, "site cannot be nil")
	}
	if err := site.Validate(); err != nil {
		return errors.NewPersistenceError("insert", "site", site.ExternalID, err)
	}

	c := site.Copy()
	if c.ID == "" {
		c.ID = SiteID(uuid.NewString())
	}
	if err := s.sites.Add(c); err != nil {
		return errors.NewPersistenceError("insert", "site", string(c.ID), err)
	}
	site.ID = c.ID
	return nil
}

// Rocket returns a copy of the rocket with the given id.
func (s *store) Rocket(id RocketID) (*Rocket, error) {
	rocket, ok := s.rockets.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("rocket", string(id))
	}
	return rocket.Copy(), nil
}

// Rockets returns copies of all rockets ordered by name.
func (s *store) Rockets() []*Rocket {
	list := s.rockets.List()
	out := make([]*Rocket, len(list))
	for i, r := range list {
		out[i] = r.Copy()
	}
	return out
}

// FindRocketByExternalIDOrName delegates to the rocket collection's
// two-stage lookup.
func (s *store) FindRocketByExternalIDOrName(externalID, name string) (*Rocket, bool) {
	rocket, ok := s.rockets.FindByExternalIDOrName(externalID, name)
	if !ok {
		return nil, false
	}
	return rocket.Copy(), true
}

// AddRocket validates and adds a new rocket.
func (s *store) AddRocket(rocket *Rocket) error {
	if rocket == nil {
		return errors.NewValidationError("rocket", nil, "rocket cannot be nil")
	}
	if err := rocket.Validate(); err != nil {
		return errors.NewPersistenceError("insert", "rocket", rocket.ExternalID, err)
	}

	c := rocket.Copy()
	if c.ID == "" {
		c.ID = RocketID(uuid.NewString())
	}
	if err := s.rockets.Add(c); err != nil {
		return errors.NewPersistenceError("insert", "rocket", string(c.ID), err)
	}
	rocket.ID = c.ID
	return nil
}

// AppendSyncRecord appends one audit entry. The log is append-only;
// entries are never mutated after this call.
func (s *store) AppendSyncRecord(record *SyncRecord) error {
	if record == nil {
		return errors.NewValidationError("record", nil, "sync record cannot be nil")
	}
	if err := record.Validate(); err != nil {
		return errors.NewPersistenceError("append", "sync record", record.ID, err)
	}

	c := *record
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.syncLog = append(s.syncLog, &c)
	s.mu.Unlock()

	record.ID = c.ID
	return nil
}

// SyncHistory returns copies of all audit entries in append order.
func (s *store) SyncHistory() []*SyncRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*SyncRecord, len(s.syncLog))
	for i, r := range s.syncLog {
		c := *r
		out[i] = &c
	}
	return out
}

// LastSync returns the most recent successful sync for a mode.
func (s *store) LastSync(mode SyncMode) (*SyncRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.syncLog) - 1; i >= 0; i-- {
		r := s.syncLog[i]
		if r.Mode == mode && r.Status == SyncStatusSuccess {
			c := *r
			return &c, true
		}
	}
	return nil, false
}
