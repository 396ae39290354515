package planner

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/remixastro/shockwave/pkg/errors"
)

// Persistence loads and saves the whole store as one YAML document.
// The relational engine behind a production deployment is out of this
// package's hands; the file form keeps a desk's plan portable and
// diffable.
type Persistence interface {
	Load(path string) error
	Save(path string) error
}

// snapshot is the serialized shape of the store.
type snapshot struct {
	Sites     []*Site       `yaml:"sites,omitempty"`
	Rockets   []*Rocket     `yaml:"rockets,omitempty"`
	Launches  []*Launch     `yaml:"launches,omitempty"`
	Reentries []*Reentry    `yaml:"reentries,omitempty"`
	SyncLog   []*SyncRecord `yaml:"sync_log,omitempty"`
}

// NewFromPath creates a store loaded from a YAML snapshot on disk.
// A missing file yields an empty store, so first runs need no setup.
func NewFromPath(path string) (Store, error) {
	s := newStore()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the store's contents with the snapshot at path.
func (s *store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	launches := NewLaunches()
	reentries := NewReentries()
	sites := NewSites()
	rockets := NewRockets()

	for _, site := range snap.Sites {
		if err := sites.Add(site); err != nil {
			return errors.NewPersistenceError("load", "site", string(site.ID), err)
		}
	}
	for _, rocket := range snap.Rockets {
		if err := rockets.Add(rocket); err != nil {
			return errors.NewPersistenceError("load", "rocket", string(rocket.ID), err)
		}
	}
	for _, launch := range snap.Launches {
		if err := launch.Validate(); err != nil {
			return errors.NewPersistenceError("load", "launch", string(launch.ID), err)
		}
		if err := launches.Add(launch); err != nil {
			return errors.NewPersistenceError("load", "launch", string(launch.ID), err)
		}
	}
	for _, reentry := range snap.Reentries {
		if err := reentry.Validate(); err != nil {
			return errors.NewPersistenceError("load", "reentry", string(reentry.ID), err)
		}
		if err := reentries.Add(reentry); err != nil {
			return errors.NewPersistenceError("load", "reentry", string(reentry.ID), err)
		}
	}

	s.launches = launches
	s.reentries = reentries
	s.sites = sites
	s.rockets = rockets

	s.mu.Lock()
	s.syncLog = snap.SyncLog
	s.mu.Unlock()

	return nil
}

// Save writes the store as a YAML snapshot at path, creating parent
// directories as needed. The write goes through a temp file and rename
// so a crash never leaves a torn snapshot.
func (s *store) Save(path string) error {
	snap := snapshot{
		Sites:     s.Sites(),
		Rockets:   s.Rockets(),
		Launches:  s.Launches(),
		Reentries: s.Reentries(),
		SyncLog:   s.SyncHistory(),
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".planner-*.yaml")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	return nil
}
