package journal_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/veska/keywatch/internal/errors"
	"codeberg.org/veska/keywatch/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	return store
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	_, err := journal.NewStore(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStoreEmptyDir(t *testing.T) {
	_, err := journal.NewStore("", nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, journal.ErrInvalidDir))
}

func TestPathFor(t *testing.T) {
	store := newTestStore(t)
	day := time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local)

	assert.Equal(t, filepath.Join(store.Dir(), "keyboard_log_2025-03-14.json"), store.PathFor(day))
	assert.Equal(t, filepath.Join(store.Dir(), "keyboard_report_2025-03-14.txt"), store.ReportPathFor(day))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2025, 3, 14, 8, 30, 0, 0, time.Local)

	agg := journal.NewDailyAggregate(start)
	for i := 0; i < 7; i++ {
		agg.Record(start.Add(time.Duration(i*11) * time.Minute))
	}

	path := store.PathFor(start)
	require.NoError(t, store.Save(agg, path))

	loaded := store.Load(path, time.Now())

	assert.Equal(t, agg.TotalCount, loaded.TotalCount)
	assert.Equal(t, agg.HourlyCounts, loaded.HourlyCounts)
	assert.True(t, agg.StartTime.Equal(loaded.StartTime), "start time must survive the round trip")
	require.Len(t, loaded.Keystrokes, len(agg.Keystrokes))
	for i := range agg.Keystrokes {
		assert.True(t, agg.Keystrokes[i].Equal(loaded.Keystrokes[i]))
	}
	assert.Len(t, loaded.HourlyCounts, 24, "all 24 hour keys must be present, zeroes included")
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	agg := store.Load(filepath.Join(store.Dir(), "keyboard_log_1999-01-01.json"), now)

	assert.Equal(t, 0, agg.TotalCount)
	assert.True(t, agg.StartTime.Equal(now))
	assert.Len(t, agg.HourlyCounts, 24)
}

func TestLoadCorruptFile(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "keyboard_log_2025-03-14.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0o600))

	agg := store.Load(path, time.Now())

	assert.Equal(t, 0, agg.TotalCount, "corrupt journal must degrade to a fresh aggregate")
	assert.Empty(t, agg.Keystrokes)
}

func TestLoadMissingRequiredField(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "keyboard_log_2025-03-14.json")

	// Structurally valid JSON but without the keystroke log.
	doc := map[string]any{
		"hourly_counts": map[string]int{"0": 3},
		"total_count":   3,
		"start_time":    time.Now().Format(time.RFC3339),
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	agg := store.Load(path, time.Now())
	assert.Equal(t, 0, agg.TotalCount)
}

func TestLoadPadsMissingHours(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "keyboard_log_2025-03-14.json")

	doc := map[string]any{
		"hourly_counts": map[string]int{"9": 2},
		"total_count":   2,
		"start_time":    time.Now().Format(time.RFC3339),
		"keystrokes":    []string{time.Now().Format(time.RFC3339), time.Now().Format(time.RFC3339)},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	agg := store.Load(path, time.Now())
	assert.Equal(t, 2, agg.TotalCount)
	assert.Len(t, agg.HourlyCounts, 24, "sparse hourly counts must be padded back to 24 buckets")
	assert.Equal(t, 2, agg.HourCount(9))
}

func TestSaveFailureReported(t *testing.T) {
	store := newTestStore(t)
	agg := journal.NewDailyAggregate(time.Now())

	err := store.Save(agg, filepath.Join(store.Dir(), "no", "such", "dir", "log.json"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, journal.ErrSaveFailed))
}
