package planner

import "strings"

// Status represents the lifecycle state of a launch or re-entry.
type Status string

// Launch and re-entry statuses, matching the planning desk's vocabulary.
const (
	StatusScheduled      Status = "Scheduled"
	StatusGo             Status = "Go for Launch"
	StatusSuccess        Status = "Success"
	StatusFailure        Status = "Failure"
	StatusPartialFailure Status = "Partial Failure"
	StatusScrubbed       Status = "Scrubbed"
	StatusHold           Status = "Hold"
	StatusInFlight       Status = "In Flight"
)

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Abbrev returns the short form used in timeline cells.
func (s Status) Abbrev() string {
	switch s {
	case StatusScheduled:
		return "SCH"
	case StatusGo:
		return "GO"
	case StatusSuccess:
		return "SUC"
	case StatusFailure:
		return "FAIL"
	case StatusPartialFailure:
		return "PF"
	case StatusScrubbed:
		return "SCR"
	case StatusHold:
		return "HOLD"
	case StatusInFlight:
		return "FLT"
	default:
		return string(s)
	}
}

// ParseStatus maps a feed status name onto the planner's vocabulary.
// Unknown names fall back to Scheduled so a new feed status never makes
// a record unrepresentable.
func ParseStatus(name string) Status {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "go", "go for launch":
		return StatusGo
	case "success", "launch successful":
		return StatusSuccess
	case "failure", "launch failure":
		return StatusFailure
	case "partial failure":
		return StatusPartialFailure
	case "scrubbed":
		return StatusScrubbed
	case "hold", "on hold", "to be confirmed", "to be determined":
		return StatusHold
	case "in flight":
		return StatusInFlight
	default:
		return StatusScheduled
	}
}
