package journal

import (
	"strconv"
	"time"
)

const hoursPerDay = 24

// DailyAggregate accumulates keyboard activity for a single calendar day.
// Only event timestamps are recorded; key content never is.
//
// The structure mirrors the persisted document one-to-one: hourly counts are
// keyed "0".."23" and all 24 keys are always present, the total equals both
// the sum of the hourly counts and the length of the keystroke log.
type DailyAggregate struct {
	HourlyCounts map[string]int `json:"hourly_counts"`
	TotalCount   int            `json:"total_count"`
	StartTime    time.Time      `json:"start_time"`
	Keystrokes   []time.Time    `json:"keystrokes"`
}

// NewDailyAggregate returns a zeroed aggregate whose session started at now.
func NewDailyAggregate(now time.Time) *DailyAggregate {
	agg := &DailyAggregate{
		HourlyCounts: make(map[string]int, hoursPerDay),
		StartTime:    now,
		Keystrokes:   []time.Time{},
	}
	agg.fillHours()

	return agg
}

// Record counts one keyboard event at the given timestamp.
func (a *DailyAggregate) Record(ts time.Time) {
	a.TotalCount++
	a.HourlyCounts[strconv.Itoa(ts.Hour())]++
	a.Keystrokes = append(a.Keystrokes, ts)
}

// HourCount returns the event count for an hour of day (0-23).
func (a *DailyAggregate) HourCount(hour int) int {
	return a.HourlyCounts[strconv.Itoa(hour)]
}

// fillHours ensures every hour key exists, so zero-count hours survive
// serialization and loaded documents are padded back to 24 buckets.
func (a *DailyAggregate) fillHours() {
	if a.HourlyCounts == nil {
		a.HourlyCounts = make(map[string]int, hoursPerDay)
	}
	for hour := 0; hour < hoursPerDay; hour++ {
		key := strconv.Itoa(hour)
		if _, ok := a.HourlyCounts[key]; !ok {
			a.HourlyCounts[key] = 0
		}
	}
	if a.Keystrokes == nil {
		a.Keystrokes = []time.Time{}
	}
}
