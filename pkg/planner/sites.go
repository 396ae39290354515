package planner

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Sites is a concurrent safe collection of launch and re-entry sites.
type Sites struct {
	mu    sync.RWMutex
	sites map[SiteID]*Site
}

// NewSites creates a new Sites collection.
func NewSites() *Sites {
	return &Sites{sites: make(map[SiteID]*Site)}
}

// Get returns a site by id and whether it exists.
func (s *Sites) Get(id SiteID) (*Site, bool) {
	s.mu.RLock()
	site, ok := s.sites[id]
	s.mu.RUnlock()
	return site, ok
}

// Add adds a site, returning an error if the id is already taken.
func (s *Sites) Add(site *Site) error {
	if site == nil {
		return errors.NewValidationError("site", nil, "site cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sites[site.ID]; exists {
		return errors.ErrAlreadyExists
	}
	s.sites[site.ID] = site
	return nil
}

// Set replaces a site by id.
func (s *Sites) Set(id SiteID, site *Site) error {
	if site == nil {
		return errors.NewValidationError("site", nil, "site cannot be nil")
	}

	s.mu.Lock()
	s.sites[id] = site
	s.mu.Unlock()
	return nil
}

// Len returns the number of sites.
func (s *Sites) Len() int {
	s.mu.RLock()
	length := len(s.sites)
	s.mu.RUnlock()
	return length
}

// List returns all sites ordered by location, then pad.
func (s *Sites) List() []*Site {
	s.mu.RLock()
	sites := make([]*Site, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, site)
	}
	s.mu.RUnlock()

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Location != sites[j].Location {
			return sites[i].Location < sites[j].Location
		}
		return sites[i].Pad < sites[j].Pad
	})
	return sites
}

// FindByExternalIDOrName looks a site up by feed identifier first, then
// by fold-insensitive location/pad match. Kind narrows the search so a
// launch pad never matches a drop zone of the same name.
func (s *Sites) FindByExternalIDOrName(kind SiteKind, externalID, location, pad string) (*Site, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if externalID != "" {
		for _, site := range s.sites {
			if site.Kind == kind && site.ExternalID == externalID {
				return site, true
			}
		}
	}

	if location == "" {
		return nil, false
	}
	wantLoc := foldName(location)
	wantPad := foldName(pad)
	for _, site := range s.sites {
		if site.Kind != kind {
			continue
		}
		if foldName(site.Location) == wantLoc && foldName(site.Pad) == wantPad {
			return site, true
		}
	}
	return nil, false
}

// foldName normalizes a name for case-insensitive matching across the
// feed's and the desk's spelling of the same site.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
