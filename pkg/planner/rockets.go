package planner

import (
	"sort"
	"sync"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Rockets is a concurrent safe collection of rockets.
type Rockets struct {
	mu      sync.RWMutex
	rockets map[RocketID]*Rocket
}

// NewRockets creates a new Rockets collection.
func NewRockets() *Rockets {
	return &Rockets{rockets: make(map[RocketID]*Rocket)}
}

// Get returns a rocket by id and whether it exists.
func (r *Rockets) Get(id RocketID) (*Rocket, bool) {
	r.mu.RLock()
	rocket, ok := r.rockets[id]
	r.mu.RUnlock()
	return rocket, ok
}

// Add adds a rocket, returning an error if the id is already taken.
func (r *Rockets) Add(rocket *Rocket) error {
	if rocket == nil {
		return errors.NewValidationError("rocket", nil, "rocket cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rockets[rocket.ID]; exists {
		return errors.ErrAlreadyExists
	}
	r.rockets[rocket.ID] = rocket
	return nil
}

// Set replaces a rocket by id.
func (r *Rockets) Set(id RocketID, rocket *Rocket) error {
	if rocket == nil {
		return errors.NewValidationError("rocket", nil, "rocket cannot be nil")
	}

	r.mu.Lock()
	r.rockets[id] = rocket
	r.mu.Unlock()
	return nil
}

// Len returns the number of rockets.
func (r *Rockets) Len() int {
	r.mu.RLock()
	length := len(r.rockets)
	r.mu.RUnlock()
	return length
}

// List returns all rockets ordered by name.
func (r *Rockets) List() []*Rocket {
	r.mu.RLock()
	rockets := make([]*Rocket, 0, len(r.rockets))
	for _, rocket := range r.rockets {
		rockets = append(rockets, rocket)
	}
	r.mu.RUnlock()

	sort.Slice(rockets, func(i, j int) bool {
		return rockets[i].Name < rockets[j].Name
	})
	return rockets
}

// FindByExternalIDOrName looks a rocket up by feed identifier first, then
// by fold-insensitive name match.
func (r *Rockets) FindByExternalIDOrName(externalID, name string) (*Rocket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if externalID != "" {
		for _, rocket := range r.rockets {
			if rocket.ExternalID == externalID {
				return rocket, true
			}
		}
	}

	if name == "" {
		return nil, false
	}
	want := foldName(name)
	for _, rocket := range r.rockets {
		if foldName(rocket.Name) == want {
			return rocket, true
		}
	}
	return nil, false
}
