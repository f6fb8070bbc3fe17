package telemetry

import (
	"context"

	"codeberg.org/veska/keywatch/internal/stats"
)

// Collector records derived activity snapshots for later analysis.
// Implementations must tolerate being called from the monitor's
// checkpoint path and must never be fatal to the monitor.
type Collector interface {
	Record(ctx context.Context, snapshot *stats.Snapshot) error
	Close() error
}
