package planner

import (
	"sort"
	"sync"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Launches is a concurrent safe collection of launches, indexed by local
// id and by external id. Manual launches carry no external id and are
// therefore invisible to the external index, which is what preserves them
// across sync runs.
type Launches struct {
	mu         sync.RWMutex
	launches   map[LaunchID]*Launch
	byExternal map[string]LaunchID
}

// NewLaunches creates a new Launches collection.
func NewLaunches() *Launches {
	return &Launches{
		launches:   make(map[LaunchID]*Launch),
		byExternal: make(map[string]LaunchID),
	}
}

// Get returns a launch by id and whether it exists.
func (l *Launches) Get(id LaunchID) (*Launch, bool) {
	l.mu.RLock()
	launch, ok := l.launches[id]
	l.mu.RUnlock()
	return launch, ok
}

// GetByExternalID returns a launch by its feed identifier. Only external
// records are ever found this way.
func (l *Launches) GetByExternalID(externalID string) (*Launch, bool) {
	if externalID == "" {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.byExternal[externalID]
	if !ok {
		return nil, false
	}
	launch, ok := l.launches[id]
	return launch, ok
}

// Add adds a launch, returning an error if the id or external id is
// already taken.
func (l *Launches) Add(launch *Launch) error {
	if launch == nil {
		return errors.NewValidationError("launch", nil, "launch cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.launches[launch.ID]; exists {
		return errors.ErrAlreadyExists
	}
	if launch.ExternalID != "" {
		if _, exists := l.byExternal[launch.ExternalID]; exists {
			return errors.ErrAlreadyExists
		}
		l.byExternal[launch.ExternalID] = launch.ID
	}
	l.launches[launch.ID] = launch
	return nil
}

// Set replaces a launch by id, keeping the external index consistent.
func (l *Launches) Set(id LaunchID, launch *Launch) error {
	if launch == nil {
		return errors.NewValidationError("launch", nil, "launch cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if launch.ExternalID != "" {
		if other, exists := l.byExternal[launch.ExternalID]; exists && other != id {
			return errors.ErrAlreadyExists
		}
	}
	if prev, exists := l.launches[id]; exists && prev.ExternalID != "" {
		delete(l.byExternal, prev.ExternalID)
	}
	if launch.ExternalID != "" {
		l.byExternal[launch.ExternalID] = id
	}
	l.launches[id] = launch
	return nil
}

// Delete removes a launch by id.
func (l *Launches) Delete(id LaunchID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	launch, exists := l.launches[id]
	if !exists {
		return errors.NewNotFoundError("launch", string(id))
	}
	if launch.ExternalID != "" {
		delete(l.byExternal, launch.ExternalID)
	}
	delete(l.launches, id)
	return nil
}

// Len returns the number of launches.
func (l *Launches) Len() int {
	l.mu.RLock()
	length := len(l.launches)
	l.mu.RUnlock()
	return length
}

// List returns all launches ordered by date, then mission name.
func (l *Launches) List() []*Launch {
	l.mu.RLock()
	launches := make([]*Launch, 0, len(l.launches))
	for _, launch := range l.launches {
		launches = append(launches, launch)
	}
	l.mu.RUnlock()

	sort.Slice(launches, func(i, j int) bool {
		if !launches[i].Date.Equal(launches[j].Date) {
			return launches[i].Date.Before(launches[j].Date)
		}
		return launches[i].Mission < launches[j].Mission
	})
	return launches
}
