// Package schedule derives site occupancy windows from planned events.
//
// A launch occupies its pad for a turnaround period starting on launch
// day; a re-entry occupies its drop zone for a recovery period. Windows
// are half-open day intervals: a window covers its start day up to but
// not including its end day. A zero-duration window still occupies
// exactly its start day.
package schedule

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/remixastro/shockwave/pkg/planner"
)

// Default occupancy durations in days.
const (
	DefaultTurnaroundDays = 7
	DefaultRecoveryDays   = 3
)

// Event is one schedulable occurrence, flattened from a launch or
// re-entry record.
type Event struct {
	EntityID string
	Variant  planner.Variant
	SiteKey  string
	Date     utc.Time
}

// Window is one occupancy interval at a site.
type Window struct {
	SiteKey  string
	Start    utc.Time // first occupied day
	End      utc.Time // first free day
	EntityID string
	Variant  planner.Variant
}

// Contains reports whether the window occupies the given day. The
// start day is always occupied, even for a zero-duration window.
func (w Window) Contains(day utc.Time) bool {
	d := dayOf(day)
	if d.Equal(w.Start.Time) {
		return true
	}
	return d.After(w.Start.Time) && d.Before(w.End.Time)
}

// Days returns how many days the window occupies, never less than one.
func (w Window) Days() int {
	days := int(w.End.Sub(w.Start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// DurationConfig controls how long each event variant occupies its
// site. Overrides map a site key to a duration that replaces the
// variant default for events at that site.
type DurationConfig struct {
	TurnaroundDays int
	RecoveryDays   int
	SiteOverrides  map[string]int
}

// DefaultDurations returns the standard pad turnaround and recovery
// periods.
func DefaultDurations() DurationConfig {
	return DurationConfig{
		TurnaroundDays: DefaultTurnaroundDays,
		RecoveryDays:   DefaultRecoveryDays,
	}
}

// days resolves the occupancy duration for one event. Negative values
// are treated as zero.
func (c DurationConfig) days(variant planner.Variant, siteKey string) int {
	if d, ok := c.SiteOverrides[siteKey]; ok {
		return max(d, 0)
	}
	switch variant {
	case planner.VariantReentry:
		return max(c.RecoveryDays, 0)
	default:
		return max(c.TurnaroundDays, 0)
	}
}

// KeyFn maps an event to its group key. A nil KeyFn groups by site key.
type KeyFn func(Event) string

// Group is the ordered window list for one key.
type Group struct {
	Key     string
	Windows []Window
}

// Grouping is the result of a Compute pass. Groups keep the order in
// which their keys were first encountered in the event list.
type Grouping struct {
	groups   []*Group
	index    map[string]*Group
	unplaced int
}

// Compute builds occupancy windows for every placeable event. An event
// with no site or no date cannot be placed; it is counted, not dropped
// silently.
func Compute(events []Event, config DurationConfig, keyFn KeyFn) *Grouping {
	if keyFn == nil {
		keyFn = func(e Event) string { return e.SiteKey }
	}
	g := &Grouping{index: make(map[string]*Group)}

	for _, e := range events {
		if e.SiteKey == "" || e.Date.IsZero() {
			g.unplaced++
			continue
		}
		start := dayOf(e.Date)
		w := Window{
			SiteKey:  e.SiteKey,
			Start:    utc.Time{Time: start},
			End:      utc.Time{Time: start.AddDate(0, 0, config.days(e.Variant, e.SiteKey))},
			EntityID: e.EntityID,
			Variant:  e.Variant,
		}

		key := keyFn(e)
		group, ok := g.index[key]
		if !ok {
			group = &Group{Key: key}
			g.index[key] = group
			g.groups = append(g.groups, group)
		}
		group.Windows = append(group.Windows, w)
	}
	return g
}

// Groups returns the groups in first-encounter order.
func (g *Grouping) Groups() []*Group {
	return g.groups
}

// Group returns the group for a key.
func (g *Grouping) Group(key string) (*Group, bool) {
	group, ok := g.index[key]
	return group, ok
}

// Unplaced returns how many events could not be placed.
func (g *Grouping) Unplaced() int {
	return g.unplaced
}

// WindowsForDay returns every window occupying the given day at the
// given site, across all groups.
func (g *Grouping) WindowsForDay(day utc.Time, siteKey string) []Window {
	var out []Window
	for _, group := range g.groups {
		for _, w := range group.Windows {
			if w.SiteKey == siteKey && w.Contains(day) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Overlap is a pair of windows occupying the same site on at least one
// shared day.
type Overlap struct {
	SiteKey string
	A, B    Window
}

// Overlaps reports every same-site window collision. The planning desk
// uses this to spot conflicting bookings before they reach a range
// safety review.
func (g *Grouping) Overlaps() []Overlap {
	var windows []Window
	for _, group := range g.groups {
		windows = append(windows, group.Windows...)
	}

	var out []Overlap
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			a, b := windows[i], windows[j]
			if a.SiteKey != b.SiteKey || a.EntityID == b.EntityID {
				continue
			}
			if overlaps(a, b) {
				out = append(out, Overlap{SiteKey: a.SiteKey, A: a, B: b})
			}
		}
	}
	return out
}

// overlaps treats a zero-duration window as occupying one day.
func overlaps(a, b Window) bool {
	aEnd := effectiveEnd(a)
	bEnd := effectiveEnd(b)
	return a.Start.Time.Before(bEnd) && b.Start.Time.Before(aEnd)
}

func effectiveEnd(w Window) time.Time {
	if !w.End.After(w.Start) {
		return w.Start.AddDate(0, 0, 1)
	}
	return w.End.Time
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t utc.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
