package stats_test

import (
	"strings"
	"testing"
	"time"

	"codeberg.org/veska/keywatch/internal/journal"
	"codeberg.org/veska/keywatch/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRate(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)
	agg := journal.NewDailyAggregate(now.Add(-1 * time.Hour))
	for i := 0; i < 120; i++ {
		agg.Record(now.Add(-time.Duration(i) * time.Second))
	}

	snap := stats.Compute(agg, now)

	assert.Equal(t, 120, snap.Total)
	assert.InDelta(t, 1.0, snap.DurationHours, 1e-9)
	assert.InDelta(t, 2.0, snap.PerMinute, 1e-9, "120 events over one hour is 2 per minute")
}

func TestComputeZeroDuration(t *testing.T) {
	now := time.Now()
	agg := journal.NewDailyAggregate(now)

	snap := stats.Compute(agg, now)

	assert.Zero(t, snap.DurationHours)
	assert.Zero(t, snap.PerMinute, "zero duration must not divide by zero")
}

func TestPeakHourTieBreak(t *testing.T) {
	base := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	agg := journal.NewDailyAggregate(base)
	for i := 0; i < 5; i++ {
		agg.Record(base.Add(3*time.Hour + time.Duration(i)*time.Second))
		agg.Record(base.Add(7*time.Hour + time.Duration(i)*time.Second))
	}

	snap := stats.Compute(agg, base.Add(8*time.Hour))

	assert.Equal(t, 3, snap.PeakHour, "ties resolve to the lowest hour")
	assert.Equal(t, 5, snap.PeakCount)
	assert.Equal(t, "03:00 - 04:00", snap.PeakRange())
}

func TestPeakRangeNoEvents(t *testing.T) {
	snap := stats.Compute(journal.NewDailyAggregate(time.Now()), time.Now())
	assert.Equal(t, "N/A", snap.PeakRange())
}

func TestRenderReport(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	agg := journal.NewDailyAggregate(start)
	for i := 0; i < 90; i++ {
		agg.Record(start.Add(time.Duration(i) * 20 * time.Second))
	}

	report := stats.RenderReport(stats.Compute(agg, start.Add(30*time.Minute)))

	assert.Contains(t, report, "===== Keyboard Activity Report =====")
	assert.Contains(t, report, "Date: 2025-03-14")
	assert.Contains(t, report, "Monitoring Duration: 0.50 hours")
	assert.Contains(t, report, "Total Keystrokes: 90")
	assert.Contains(t, report, "Average Keystrokes Per Minute: 3.0")
	assert.Contains(t, report, "Peak Activity Hour: 09:00 - 10:00 (90 keystrokes)")
	assert.Contains(t, report, "09:00 - 10:00: 90 keystrokes")
}

func TestRenderReportNoEvents(t *testing.T) {
	now := time.Now()
	report := stats.RenderReport(stats.Compute(journal.NewDailyAggregate(now), now))

	assert.Contains(t, report, "Peak Activity Hour: N/A")

	// The hourly breakdown is exactly 24 lines, ascending, all zero.
	_, breakdown, found := strings.Cut(report, "--- Hourly Breakdown ---\n")
	require.True(t, found)
	lines := strings.Split(strings.TrimRight(breakdown, "\n"), "\n")
	require.Len(t, lines, 24)
	for hour, line := range lines {
		assert.Equal(t, stats.HourRange(hour)+": 0 keystrokes", line)
	}
}

func TestWriteReport(t *testing.T) {
	now := time.Now()
	path := t.TempDir() + "/report.txt"

	err := stats.WriteReport(stats.Compute(journal.NewDailyAggregate(now), now), path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
