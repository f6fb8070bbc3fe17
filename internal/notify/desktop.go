package notify

import (
	"fmt"
	"sync"

	"codeberg.org/veska/keywatch/internal/logger"
	"github.com/gen2brain/beeep"
)

// Milestone sends a desktop notification each time the daily total crosses
// another multiple of Every. Disabled when Every is zero.
type Milestone struct {
	Every int

	mu   sync.Mutex
	last int
}

// Check fires at most one notification per crossed milestone. Failures to
// reach the desktop notification daemon are logged and swallowed.
func (m *Milestone) Check(total int) {
	if m == nil || m.Every <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reached := (total / m.Every) * m.Every
	if reached == 0 || reached == m.last {
		return
	}
	m.last = reached

	body := fmt.Sprintf("%d keystrokes today", reached)
	if err := beeep.Notify("keywatch", body, ""); err != nil {
		logger.Debug().Err(err).Msg("Desktop notification failed")
	}
}
