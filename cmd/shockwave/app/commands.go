package app

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/remixastro/shockwave/pkg/errors"
	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
	"github.com/remixastro/shockwave/pkg/schedule"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	var (
		limit     int
		from      string
		to        string
		reentries bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "sync [upcoming|previous|range]",
		Short: "Merge feed records into the local plan",
		Long: `Sync fetches records from the external launch feed and merges them
into the local plan. Feed-sourced fields are refreshed; manual records
and local overlay fields (NOTAM references, remarks) are never touched.

Every run appends one entry to the sync history, including failed runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := planner.SyncModeUpcoming
			if len(args) > 0 {
				mode = planner.SyncMode(args[0])
			}

			params := feed.Params{Limit: limit}
			if mode == planner.SyncModeRange {
				var err error
				if params.RangeStart, err = parseDay(from); err != nil {
					return err
				}
				if params.RangeEnd, err = parseDay(to); err != nil {
					return err
				}
			}

			if reentries {
				a.config.Reentries = true
			}
			sw, err := a.Shockwave()
			if err != nil {
				return err
			}

			rec, runErr := sw.Sync(cmd.Context(), mode, params)
			if rec != nil {
				if !dryRun {
					if err := sw.Save(); err != nil {
						return err
					}
				}
				a.printSyncRecord(cmd.OutOrStdout(), rec, dryRun)
			}
			return runErr
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to fetch (0 uses the feed default)")
	cmd.Flags().StringVar(&from, "from", "", "range start day, YYYY-MM-DD (range mode)")
	cmd.Flags().StringVar(&to, "to", "", "range end day, YYYY-MM-DD (range mode)")
	cmd.Flags().BoolVar(&reentries, "reentries", false, "also sync re-entry events")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "merge in memory but do not save the snapshot")

	return cmd
}

// NewHistoryCommand creates the history command.
func (a *App) NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the sync audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, err := a.Shockwave()
			if err != nil {
				return err
			}
			history := sw.History()
			if limit > 0 && len(history) > limit {
				history = history[len(history)-limit:]
			}

			return a.render(cmd.OutOrStdout(), history, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TIMESTAMP\tMODE\tADDED\tUPDATED\tUNCHANGED\tFAILED\tSTATUS")
				for _, rec := range history {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
						rec.Timestamp.Format("2006-01-02 15:04"), rec.Mode,
						rec.Added, rec.Updated, rec.Unchanged, rec.Failed, rec.Status)
				}
				tw.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent entries")
	return cmd
}

// NewTimelineCommand creates the timeline command.
func (a *App) NewTimelineCommand() *cobra.Command {
	var (
		month      string
		turnaround int
		recovery   int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show site occupancy windows",
		Long: `Timeline derives occupancy windows from the plan: each launch blocks
its pad for the turnaround period, each re-entry blocks its drop zone
for the recovery period. Windows are grouped by site in the order the
sites first appear, and same-site collisions are flagged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, err := a.Shockwave()
			if err != nil {
				return err
			}

			config := schedule.DefaultDurations()
			if turnaround > 0 {
				config.TurnaroundDays = turnaround
			}
			if recovery > 0 {
				config.RecoveryDays = recovery
			}
			grouping := sw.Windows(config, nil)

			var bounds *monthBounds
			if month != "" {
				b, err := parseMonth(month)
				if err != nil {
					return err
				}
				bounds = &b
			}

			a.printTimeline(cmd.OutOrStdout(), sw.Store(), grouping, bounds)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to one month, YYYY-MM")
	cmd.Flags().IntVar(&turnaround, "turnaround", 0, "pad turnaround days (default 7)")
	cmd.Flags().IntVar(&recovery, "recovery", 0, "drop zone recovery days (default 3)")
	return cmd
}

// NewStatsCommand creates the stats command.
func (a *App) NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, err := a.Shockwave()
			if err != nil {
				return err
			}
			summary := sw.Stats()

			return a.render(cmd.OutOrStdout(), summary, func(w io.Writer) {
				fmt.Fprintf(w, "Launches:   %d (%d successful, %d failed, %d pending)\n",
					summary.TotalLaunches, summary.Successful, summary.Failed, summary.Pending)
				fmt.Fprintf(w, "Re-entries: %d\n\n", summary.TotalReentries)

				if len(summary.ByRocket) > 0 {
					fmt.Fprintln(w, "By rocket:")
					for _, c := range summary.ByRocket {
						fmt.Fprintf(w, "  %-40s %d\n", c.Name, c.Count)
					}
				}
				if len(summary.BySite) > 0 {
					fmt.Fprintln(w, "By site:")
					for _, c := range summary.BySite {
						fmt.Fprintf(w, "  %-40s %d\n", c.Name, c.Count)
					}
				}
			})
		},
	}
}

// NewSitesCommand creates the sites command.
func (a *App) NewSitesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List known launch sites and drop zones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, err := a.Shockwave()
			if err != nil {
				return err
			}
			sites := sw.Store().Sites()

			return a.render(cmd.OutOrStdout(), sites, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tKIND\tCOUNTRY\tSOURCE")
				for _, site := range sites {
					source := "manual"
					if site.ExternalID != "" {
						source = "feed"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						site.DisplayName(), site.Kind, site.Country, source)
				}
				tw.Flush()
			})
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("shockwave %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit: %s\n", a.commit)
				cmd.Printf("  built:  %s\n", a.date)
			}
		},
	}
}

// render writes v in the configured output format; the table form is
// produced by tableFn.
func (a *App) render(w io.Writer, v any, tableFn func(io.Writer)) error {
	switch a.config.Output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.WrapParse("yaml", "output", err)
		}
		_, err = w.Write(data)
		return err
	default:
		tableFn(w)
		return nil
	}
}

// printSyncRecord writes a one-screen summary of a sync run.
func (a *App) printSyncRecord(w io.Writer, rec *planner.SyncRecord, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "(dry run: snapshot not saved)")
	}
	fmt.Fprintf(w, "Sync %s: %s\n", rec.Mode, rec.Status)
	fmt.Fprintf(w, "  added %d, updated %d, unchanged %d, failed %d\n",
		rec.Added, rec.Updated, rec.Unchanged, rec.Failed)
	if rec.ErrorDetail != "" {
		fmt.Fprintf(w, "  detail: %s\n", rec.ErrorDetail)
	}
}

// monthBounds is a half-open month interval.
type monthBounds struct {
	start time.Time
	end   time.Time
}

func (b monthBounds) overlaps(w schedule.Window) bool {
	end := w.End.Time
	if !end.After(w.Start.Time) {
		end = w.Start.AddDate(0, 0, 1)
	}
	return w.Start.Time.Before(b.end) && b.start.Before(end)
}

// printTimeline writes grouped occupancy windows, optionally restricted
// to one month.
func (a *App) printTimeline(w io.Writer, store planner.Store, grouping *schedule.Grouping, bounds *monthBounds) {
	for _, group := range grouping.Groups() {
		var lines []string
		for _, window := range group.Windows {
			if bounds != nil && !bounds.overlaps(window) {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s → %s  %-8s %s",
				window.Start.Format("2006-01-02"),
				window.End.Format("2006-01-02"),
				window.Variant,
				entityLabel(store, window)))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintln(w, group.Key)
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}

	if overlaps := grouping.Overlaps(); len(overlaps) > 0 {
		fmt.Fprintf(w, "\n%d same-site collisions:\n", len(overlaps))
		for _, o := range overlaps {
			fmt.Fprintf(w, "  %s: %s overlaps %s\n",
				o.SiteKey, entityLabel(store, o.A), entityLabel(store, o.B))
		}
	}
	if n := grouping.Unplaced(); n > 0 {
		fmt.Fprintf(w, "\n%d events without a site or date were not placed\n", n)
	}
}

// entityLabel resolves a window back to something readable.
func entityLabel(store planner.Store, w schedule.Window) string {
	switch w.Variant {
	case planner.VariantReentry:
		if reentry, err := store.Reentry(planner.ReentryID(w.EntityID)); err == nil {
			if reentry.VehicleComponent != "" {
				return reentry.VehicleComponent
			}
		}
	default:
		if launch, err := store.Launch(planner.LaunchID(w.EntityID)); err == nil {
			if launch.Mission != "" {
				return launch.Mission
			}
		}
	}
	return w.EntityID
}

func parseDay(s string) (utc.Time, error) {
	if s == "" {
		return utc.Time{}, errors.NewValidationError("range", s, "range mode requires --from and --to")
	}
	t, err := utc.Parse("2006-01-02", s)
	if err != nil {
		return utc.Time{}, errors.WrapParse("date", s, err)
	}
	return t, nil
}

func parseMonth(s string) (monthBounds, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return monthBounds{}, errors.WrapParse("month", s, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return monthBounds{start: start, end: start.AddDate(0, 1, 0)}, nil
}
