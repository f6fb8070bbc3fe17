package monitor

import (
	"context"
	"sync"
	"time"

	"codeberg.org/veska/keywatch/internal/capture"
	"codeberg.org/veska/keywatch/internal/config"
	"codeberg.org/veska/keywatch/internal/errors"
	"codeberg.org/veska/keywatch/internal/journal"
	"codeberg.org/veska/keywatch/internal/logger"
	"codeberg.org/veska/keywatch/internal/notify"
	"codeberg.org/veska/keywatch/internal/stats"
	"codeberg.org/veska/keywatch/internal/telemetry"
)

// Controller owns the daily aggregate for its process lifetime and
// coordinates capture, checkpointing and cross-goroutine notification.
//
// Mutation ownership: the aggregate is guarded by mu. The capture callback
// mutates under the lock, Snapshot copies under the same lock, and the
// journal store serializes its own writes, so a batch checkpoint racing a
// shutdown save cannot tear the file.
type Controller struct {
	store     *journal.Store
	source    capture.Source
	notifier  notify.Notifier
	collector telemetry.Collector
	milestone *notify.Milestone
	batchSize int
	heartbeat time.Duration
	clock     func() time.Time
	log       logger.Logger

	mu       sync.Mutex
	state    State
	agg      *journal.DailyAggregate
	path     string
	hbCancel context.CancelFunc
	hbDone   chan struct{}
}

type Option func(*Controller)

// WithNotifier attaches a presentation-layer notifier. Attaching one also
// enables the periodic heartbeat while the monitor runs.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithCollector attaches a telemetry collector fed on every checkpoint.
func WithCollector(col telemetry.Collector) Option {
	return func(c *Controller) { c.collector = col }
}

// WithMilestone enables desktop milestone notifications every n keystrokes.
func WithMilestone(n int) Option {
	return func(c *Controller) { c.milestone = &notify.Milestone{Every: n} }
}

// WithBatchSize overrides the checkpoint batch size.
func WithBatchSize(n int) Option {
	return func(c *Controller) { c.batchSize = n }
}

// WithHeartbeat overrides the heartbeat interval.
func WithHeartbeat(d time.Duration) Option {
	return func(c *Controller) { c.heartbeat = d }
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// New loads (or freshly creates) today's aggregate and returns an idle
// controller bound to it.
func New(store *journal.Store, source capture.Source, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		source:    source,
		batchSize: config.DefaultBatchSize,
		heartbeat: config.DefaultHeartbeat * time.Second,
		clock:     time.Now,
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	now := c.clock()
	c.path = store.PathFor(now)
	c.agg = store.Load(c.path, now)

	return c
}

// AttachNotifier attaches the presentation-layer bridge. Must be called
// before Start so the heartbeat is scheduled alongside the capture stream.
func (c *Controller) AttachNotifier(n notify.Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Start begins listening on the capture source. Valid from Idle or Stopped;
// a no-op when already Running. A capture source that cannot be attached is
// surfaced to the caller and leaves the state unchanged.
func (c *Controller) Start(ctx context.Context) error {
	errFactory := errors.New()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		c.log.Debug().Msg("Monitor already running")
		return nil
	}

	if err := c.source.Start(c.record); err != nil {
		return errFactory.Wrap(ErrCaptureUnavailable, err)
	}

	if c.notifier != nil {
		hbCtx, cancel := context.WithCancel(ctx)
		c.hbCancel = cancel
		c.hbDone = make(chan struct{})
		go c.heartbeatLoop(hbCtx, c.hbDone)
	}

	c.state = StateRunning
	c.log.Info().
		Str("journal", c.path).
		Int("batch_size", c.batchSize).
		Msg("Keyboard monitoring started")

	return nil
}

// Stop detaches the capture source, stops the heartbeat and forces a final
// checkpoint. A no-op unless Running; calling it twice equals calling it once.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStopped
	cancel, done := c.hbCancel, c.hbDone
	c.hbCancel, c.hbDone = nil, nil
	c.mu.Unlock()

	if err := c.source.Stop(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to detach capture source")
	}
	if cancel != nil {
		cancel()
		<-done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveLocked()
	c.log.Info().Int("total_count", c.agg.TotalCount).Msg("Keyboard monitoring stopped")

	return nil
}

// Shutdown is the explicit teardown entry point the top-level driver must
// invoke on every exit path. It stops monitoring if needed, performs a final
// save regardless of state and releases the telemetry sink.
func (c *Controller) Shutdown() {
	if err := c.Stop(); err != nil {
		c.log.Warn().Err(err).Msg("Stop during shutdown failed")
	}

	c.mu.Lock()
	c.saveLocked()
	c.mu.Unlock()

	if c.collector != nil {
		if err := c.collector.Close(); err != nil {
			c.log.Warn().Err(err).Msg("Failed to close telemetry collector")
		}
	}
}

// Snapshot derives a consistent statistics view for the presentation layer.
func (c *Controller) Snapshot() stats.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return stats.Compute(c.agg, c.clock())
}

// Report renders the activity summary to path, or to the default
// timestamped report file when path is empty. Callable in any state.
func (c *Controller) Report(path string) (string, error) {
	snap := c.Snapshot()

	if path == "" {
		path = c.store.ReportPathFor(c.clock())
	}
	if err := stats.WriteReport(snap, path); err != nil {
		return "", errors.New().Wrap(ErrReportFailed, err)
	}

	c.log.Info().Str("path", path).Msg("Report generated")

	return path, nil
}

// record is the capture callback: one invocation per keyboard event. Each
// time the total crosses a batch boundary it checkpoints the journal and
// signals the presentation layer as a single follow-up.
func (c *Controller) record(ts time.Time) {
	c.mu.Lock()
	c.agg.Record(ts)
	total := c.agg.TotalCount

	checkpoint := total%c.batchSize == 0
	var snap stats.Snapshot
	if checkpoint {
		snap = stats.Compute(c.agg, c.clock())
		c.saveLocked()
	}
	c.mu.Unlock()

	if !checkpoint {
		return
	}

	if c.notifier != nil {
		c.notifier.Signal()
	}
	if c.collector != nil {
		if err := c.collector.Record(context.Background(), &snap); err != nil {
			c.log.Debug().Err(err).Msg("Telemetry record failed")
		}
	}
	c.milestone.Check(total)
}

// heartbeatLoop gives the presentation layer a redraw signal at a fixed
// interval even when event volume is low.
func (c *Controller) heartbeatLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.notifier.Signal()
		}
	}
}

// saveLocked writes the journal; callers hold mu. A failed write is
// reported and the in-memory aggregate stays authoritative.
func (c *Controller) saveLocked() {
	if err := c.store.Save(c.agg, c.path); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("Failed to save journal")
	}
}
