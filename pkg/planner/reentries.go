package planner

import (
	"sort"
	"sync"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Reentries is a concurrent safe collection of re-entries, indexed by
// local id and by external id.
type Reentries struct {
	mu         sync.RWMutex
	reentries  map[ReentryID]*Reentry
	byExternal map[string]ReentryID
}

// NewReentries creates a new Reentries collection.
func NewReentries() *Reentries {
	return &Reentries{
		reentries:  make(map[ReentryID]*Reentry),
		byExternal: make(map[string]ReentryID),
	}
}

// Get returns a re-entry by id and whether it exists.
func (r *Reentries) Get(id ReentryID) (*Reentry, bool) {
	r.mu.RLock()
	reentry, ok := r.reentries[id]
	r.mu.RUnlock()
	return reentry, ok
}

// GetByExternalID returns a re-entry by its feed identifier.
func (r *Reentries) GetByExternalID(externalID string) (*Reentry, bool) {
	if externalID == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExternal[externalID]
	if !ok {
		return nil, false
	}
	reentry, ok := r.reentries[id]
	return reentry, ok
}

// Add adds a re-entry, returning an error if the id or external id is
// already taken.
func (r *Reentries) Add(reentry *Reentry) error {
	if reentry == nil {
		return errors.NewValidationError("reentry", nil, "re-entry cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reentries[reentry.ID]; exists {
		return errors.ErrAlreadyExists
	}
	if reentry.ExternalID != "" {
		if _, exists := r.byExternal[reentry.ExternalID]; exists {
			return errors.ErrAlreadyExists
		}
		r.byExternal[reentry.ExternalID] = reentry.ID
	}
	r.reentries[reentry.ID] = reentry
	return nil
}

// Set replaces a re-entry by id, keeping the external index consistent.
func (r *Reentries) Set(id ReentryID, reentry *Reentry) error {
	if reentry == nil {
		return errors.NewValidationError("reentry", nil, "re-entry cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if reentry.ExternalID != "" {
		if other, exists := r.byExternal[reentry.ExternalID]; exists && other != id {
			return errors.ErrAlreadyExists
		}
	}
	if prev, exists := r.reentries[id]; exists && prev.ExternalID != "" {
		delete(r.byExternal, prev.ExternalID)
	}
	if reentry.ExternalID != "" {
		r.byExternal[reentry.ExternalID] = id
	}
	r.reentries[id] = reentry
	return nil
}

// Delete removes a re-entry by id.
func (r *Reentries) Delete(id ReentryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reentry, exists := r.reentries[id]
	if !exists {
		return errors.NewNotFoundError("reentry", string(id))
	}
	if reentry.ExternalID != "" {
		delete(r.byExternal, reentry.ExternalID)
	}
	delete(r.reentries, id)
	return nil
}

// Len returns the number of re-entries.
func (r *Reentries) Len() int {
	r.mu.RLock()
	length := len(r.reentries)
	r.mu.RUnlock()
	return length
}

// List returns all re-entries ordered by date, then vehicle component.
func (r *Reentries) List() []*Reentry {
	r.mu.RLock()
	reentries := make([]*Reentry, 0, len(r.reentries))
	for _, reentry := range r.reentries {
		reentries = append(reentries, reentry)
	}
	r.mu.RUnlock()

	sort.Slice(reentries, func(i, j int) bool {
		if !reentries[i].Date.Equal(reentries[j].Date) {
			return reentries[i].Date.Before(reentries[j].Date)
		}
		return reentries[i].VehicleComponent < reentries[j].VehicleComponent
	})
	return reentries
}
