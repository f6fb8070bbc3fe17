package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
	"codeberg.org/veska/keywatch/internal/logger"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o600

	dateLayout = "2006-01-02"
)

// requiredFields are the keys a persisted document must carry to be
// considered valid. Anything less degrades to a fresh aggregate on load.
var requiredFields = []string{"hourly_counts", "total_count", "start_time", "keystrokes"}

// Store owns the on-disk representation of daily aggregates, one JSON
// document per calendar day under a single journal directory.
type Store struct {
	dir string
	log logger.Logger
	mu  sync.Mutex
}

func NewStore(dir string, log logger.Logger) (*Store, error) {
	errFactory := errors.New()

	if dir == "" {
		return nil, errFactory.New(ErrInvalidDir)
	}
	if log == nil {
		log = logger.Default()
	}

	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrDirInit, err)
	}

	return &Store{dir: dir, log: log}, nil
}

// Dir returns the journal directory.
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the journal file path for the given day.
func (s *Store) PathFor(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("keyboard_log_%s.json", day.Format(dateLayout)))
}

// ReportPathFor returns the default report file path for the given day.
func (s *Store) ReportPathFor(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("keyboard_report_%s.txt", day.Format(dateLayout)))
}

// Load reads the aggregate persisted at path. It never fails to the caller:
// a missing, unparseable or structurally incomplete document is logged and
// replaced by a fresh aggregate starting at now.
func (s *Store) Load(path string, now time.Time) *DailyAggregate {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("Failed to read journal, starting fresh")
		}
		return NewDailyAggregate(now)
	}

	agg, err := decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("Invalid journal document, starting fresh")
		return NewDailyAggregate(now)
	}

	s.log.Debug().
		Str("path", path).
		Int("total_count", agg.TotalCount).
		Msg("Journal loaded")

	return agg
}

// Save serializes the aggregate to path, overwriting any previous document.
// Concurrent saves are serialized; a checkpoint racing a shutdown must not
// produce a torn write.
func (s *Store) Save(agg *DailyAggregate, path string) error {
	errFactory := errors.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return errFactory.Wrap(ErrSaveFailed, err)
	}

	if err := os.WriteFile(path, data, defaultFilePerm); err != nil {
		return errFactory.Wrap(ErrSaveFailed, err)
	}

	s.log.Debug().Str("path", path).Int("total_count", agg.TotalCount).Msg("Journal saved")

	return nil
}

func decode(raw []byte) (*DailyAggregate, error) {
	errFactory := errors.New()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errFactory.Wrap(ErrBadDocument, err)
	}
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			return nil, errFactory.WithData(ErrBadDocument, key)
		}
	}

	agg := &DailyAggregate{}
	if err := json.Unmarshal(raw, agg); err != nil {
		return nil, errFactory.Wrap(ErrBadDocument, err)
	}
	agg.fillHours()

	return agg, nil
}
