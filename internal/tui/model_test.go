package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/veska/keywatch/internal/journal"
	"codeberg.org/veska/keywatch/internal/monitor"
)

type idleSource struct{}

func (idleSource) Start(func(time.Time)) error { return nil }
func (idleSource) Stop() error                 { return nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	store, err := journal.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	return NewModel(monitor.New(store, idleSource{}))
}

func TestViewShowsStats(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Keyboard Activity Monitor")
	assert.Contains(t, view, "Total Keystrokes:")
	assert.Contains(t, view, "Peak Hour:")
	assert.Contains(t, view, "N/A", "no events yet means no peak hour")
	assert.Contains(t, view, "No keystrokes recorded yet today")
}

func TestStatsChangedRefreshesSnapshot(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(StatsChangedMsg{})
	assert.Nil(t, cmd)

	model, ok := updated.(Model)
	require.True(t, ok)
	assert.Equal(t, 0, model.snap.Total)
}

func TestStartStopKeys(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	model := updated.(Model)
	require.NoError(t, model.err)
	assert.Equal(t, monitor.StateRunning, model.ctrl.State())
	assert.Contains(t, model.View(), "running")

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	model = updated.(Model)
	require.NoError(t, model.err)
	assert.Equal(t, monitor.StateStopped, model.ctrl.State())
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
