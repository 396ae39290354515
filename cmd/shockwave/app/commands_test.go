package app

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixastro/shockwave/pkg/schedule"
)

func day(y int, m time.Month, d int) utc.Time {
	return utc.Time{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestMonthBoundsOverlaps(t *testing.T) {
	june, err := parseMonth("2025-06")
	require.NoError(t, err)

	inside := schedule.Window{Start: day(2025, 6, 10), End: day(2025, 6, 17)}
	straddling := schedule.Window{Start: day(2025, 5, 28), End: day(2025, 6, 2)}
	before := schedule.Window{Start: day(2025, 5, 1), End: day(2025, 5, 8)}
	after := schedule.Window{Start: day(2025, 7, 1), End: day(2025, 7, 8)}
	zeroOnFirst := schedule.Window{Start: day(2025, 6, 1), End: day(2025, 6, 1)}
	zeroBeforeStart := schedule.Window{Start: day(2025, 5, 31), End: day(2025, 5, 31)}

	assert.True(t, june.overlaps(inside))
	assert.True(t, june.overlaps(straddling))
	assert.False(t, june.overlaps(before))
	assert.False(t, june.overlaps(after))
	assert.True(t, june.overlaps(zeroOnFirst), "a zero-duration window still occupies its start day")
	assert.False(t, june.overlaps(zeroBeforeStart))
}

func TestParseMonthRejectsGarbage(t *testing.T) {
	_, err := parseMonth("June 2025")
	assert.Error(t, err)
}
