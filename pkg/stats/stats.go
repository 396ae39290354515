// Package stats computes read-side summaries over the planning store.
package stats

import (
	"sort"

	"github.com/remixastro/shockwave/pkg/planner"
)

// Count is one name/count pair in a breakdown.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Summary aggregates the current store contents.
type Summary struct {
	TotalLaunches  int `json:"total_launches" yaml:"total_launches"`
	TotalReentries int `json:"total_reentries" yaml:"total_reentries"`

	Successful int `json:"successful" yaml:"successful"`
	Failed     int `json:"failed" yaml:"failed"`
	Pending    int `json:"pending" yaml:"pending"`

	ByRocket []Count `json:"by_rocket" yaml:"by_rocket"`
	BySite   []Count `json:"by_site" yaml:"by_site"`
	ByStatus []Count `json:"by_status" yaml:"by_status"`
}

// Compute builds a Summary from the store. Breakdowns are sorted by
// count descending, ties by name, so output is stable.
func Compute(r planner.Reader) *Summary {
	s := &Summary{}
	byRocket := make(map[string]int)
	bySite := make(map[string]int)
	byStatus := make(map[string]int)

	for _, launch := range r.Launches() {
		s.TotalLaunches++
		byStatus[string(launch.Status)]++

		switch launch.Status {
		case planner.StatusSuccess:
			s.Successful++
		case planner.StatusFailure, planner.StatusPartialFailure:
			s.Failed++
		default:
			s.Pending++
		}

		byRocket[rocketName(r, launch.RocketID)]++
		bySite[siteName(r, launch.SiteID)]++
	}

	s.TotalReentries = len(r.Reentries())
	s.ByRocket = sorted(byRocket)
	s.BySite = sorted(bySite)
	s.ByStatus = sorted(byStatus)
	return s
}

func rocketName(r planner.Reader, id planner.RocketID) string {
	if id == "" {
		return "unknown"
	}
	rocket, err := r.Rocket(id)
	if err != nil {
		return "unknown"
	}
	return rocket.Name
}

func siteName(r planner.Reader, id planner.SiteID) string {
	if id == "" {
		return "unknown"
	}
	site, err := r.Site(id)
	if err != nil {
		return "unknown"
	}
	return site.DisplayName()
}

func sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, count := range m {
		out = append(out, Count{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
