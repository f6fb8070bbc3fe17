package stats

import (
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
)

const ErrReportWrite = errors.ErrorCode("stats_report_write_failed")

const reportFilePerm = 0o600

// RenderReport formats a snapshot as the plain-text activity summary:
// a header block, a statistics block and a 24-line hourly breakdown.
func RenderReport(snap Snapshot) string {
	var b strings.Builder

	b.WriteString("===== Keyboard Activity Report =====\n\n")
	fmt.Fprintf(&b, "Date: %s\n", snap.Taken.Format("2006-01-02"))
	fmt.Fprintf(&b, "Monitoring Start Time: %s\n", snap.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Monitoring Duration: %.2f hours\n\n", snap.DurationHours)

	b.WriteString("--- Statistics ---\n")
	fmt.Fprintf(&b, "Total Keystrokes: %d\n", snap.Total)
	fmt.Fprintf(&b, "Average Keystrokes Per Minute: %.1f\n", snap.PerMinute)
	if snap.PeakCount > 0 {
		fmt.Fprintf(&b, "Peak Activity Hour: %s (%d keystrokes)\n\n", snap.PeakRange(), snap.PeakCount)
	} else {
		b.WriteString("Peak Activity Hour: N/A\n\n")
	}

	b.WriteString("--- Hourly Breakdown ---\n")
	for hour := 0; hour < hoursPerDay; hour++ {
		fmt.Fprintf(&b, "%s: %d keystrokes\n", HourRange(hour), snap.Hourly[hour])
	}

	return b.String()
}

// WriteReport renders the snapshot and writes it to path.
func WriteReport(snap Snapshot, path string) error {
	if err := os.WriteFile(path, []byte(RenderReport(snap)), reportFilePerm); err != nil {
		return errors.New().Wrap(ErrReportWrite, err)
	}

	return nil
}
