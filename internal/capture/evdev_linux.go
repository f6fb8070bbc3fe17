//go:build linux

package capture

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
	"codeberg.org/veska/keywatch/internal/logger"
)

const (
	inputGlob = "/dev/input/event*"

	evKey    = 0x01  // linux input event type for key transitions
	keyPress = 1     // value for a press (0 release, 2 autorepeat)
	btnMisc  = 0x100 // first non-keyboard key code (mouse buttons etc.)
)

// inputEvent mirrors struct input_event from linux/input.h on 64-bit.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

type evdevSource struct {
	mu      sync.Mutex
	files   []*os.File
	wg      sync.WaitGroup
	running bool
}

func newPlatformSource() Source {
	return &evdevSource{}
}

func (s *evdevSource) Start(emit func(time.Time)) error {
	errFactory := errors.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errFactory.New(ErrAlreadyRunning)
	}

	paths, err := filepath.Glob(inputGlob)
	if err != nil {
		return errFactory.Wrap(ErrUnavailable, err)
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			logger.Debug().Err(err).Str("device", path).Msg("Skipping input device")
			continue
		}
		s.files = append(s.files, f)
	}

	if len(s.files) == 0 {
		return errFactory.WithMessage(ErrUnavailable, "no readable input devices (is the user in the input group?)")
	}

	logger.Debug().Int("devices", len(s.files)).Msg("Listening on input devices")

	for _, f := range s.files {
		s.wg.Add(1)
		go s.readLoop(f, emit)
	}
	s.running = true

	return nil
}

func (s *evdevSource) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	files := s.files
	s.files = nil
	s.running = false
	s.mu.Unlock()

	// Closing the devices unblocks the reader goroutines.
	for _, f := range files {
		f.Close()
	}
	s.wg.Wait()

	return nil
}

// readLoop decodes raw input events from one device. Only key-press
// transitions in the keyboard code range count; the code itself is dropped.
func (s *evdevSource) readLoop(f *os.File, emit func(time.Time)) {
	defer s.wg.Done()

	var ev inputEvent
	for {
		if err := binary.Read(f, binary.LittleEndian, &ev); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				logger.Debug().Err(err).Str("device", f.Name()).Msg("Input device read ended")
			}
			return
		}

		if ev.Type != evKey || ev.Value != keyPress || ev.Code >= btnMisc {
			continue
		}

		emit(time.Unix(ev.Sec, ev.Usec*int64(time.Microsecond)))
	}
}
