package stats

import (
	"fmt"
	"time"

	"codeberg.org/veska/keywatch/internal/journal"
)

const (
	hoursPerDay    = 24
	minutesPerHour = 60
)

// Snapshot is an immutable view of the statistics derived from a daily
// aggregate at a point in time. It is recomputed on demand and never
// persisted.
type Snapshot struct {
	Total         int
	Hourly        [hoursPerDay]int
	PeakHour      int
	PeakCount     int
	StartTime     time.Time
	Taken         time.Time
	DurationHours float64
	PerMinute     float64
}

// Compute derives a snapshot from the aggregate. Pure: no mutation, no I/O.
// Peak-hour ties resolve to the lowest hour by the stable 0..23 scan.
func Compute(agg *journal.DailyAggregate, now time.Time) Snapshot {
	snap := Snapshot{
		Total:     agg.TotalCount,
		StartTime: agg.StartTime,
		Taken:     now,
	}

	for hour := 0; hour < hoursPerDay; hour++ {
		count := agg.HourCount(hour)
		snap.Hourly[hour] = count
		if count > snap.PeakCount {
			snap.PeakHour = hour
			snap.PeakCount = count
		}
	}

	snap.DurationHours = now.Sub(agg.StartTime).Hours()
	if snap.DurationHours > 0 {
		snap.PerMinute = float64(snap.Total) / (snap.DurationHours * minutesPerHour)
	}

	return snap
}

// PeakRange formats the peak hour as an "HH:00 - HH:00" range, or "N/A"
// when the day has no events.
func (s Snapshot) PeakRange() string {
	if s.PeakCount == 0 {
		return "N/A"
	}

	return HourRange(s.PeakHour)
}

// HourRange formats an hour-of-day bucket as "HH:00 - HH:00".
func HourRange(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1)
}
