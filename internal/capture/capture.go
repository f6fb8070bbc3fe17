// Package capture provides the keyboard event source. A source reports
// only that an event occurred and when; key content is discarded at the
// lowest level and never crosses this package boundary.
package capture

import (
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
)

const (
	ErrUnavailable    = errors.ErrorCode("capture_unavailable")
	ErrAlreadyRunning = errors.ErrorCode("capture_already_running")
)

// Source delivers one callback invocation per keyboard event.
type Source interface {
	// Start begins delivering events to emit from a background goroutine.
	// It fails if the underlying capture mechanism is unavailable.
	Start(emit func(time.Time)) error

	// Stop detaches from the capture mechanism and waits for delivery
	// to cease. Safe to call when not started.
	Stop() error
}

// New returns the platform keyboard source.
func New() Source {
	return newPlatformSource()
}
