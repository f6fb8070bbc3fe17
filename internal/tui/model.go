package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/veska/keywatch/internal/monitor"
	"codeberg.org/veska/keywatch/internal/stats"
)

type keyMap struct {
	Start   key.Binding
	Stop    key.Binding
	Refresh key.Binding
	Report  key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Refresh, k.Report, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Stop}, {k.Refresh, k.Report, k.Quit}}
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start monitoring"),
	),
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop monitoring"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh stats"),
	),
	Report: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate report"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the interactive presentation layer. It holds a derived snapshot
// only; the aggregate itself stays behind the controller.
type Model struct {
	ctrl   *monitor.Controller
	snap   stats.Snapshot
	keys   keyMap
	help   help.Model
	width  int
	height int
	status string
	err    error
}

func NewModel(ctrl *monitor.Controller) Model {
	return Model{
		ctrl: ctrl,
		snap: ctrl.Snapshot(),
		keys: keys,
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StatsChangedMsg:
		m.snap = m.ctrl.Snapshot()
		return m, nil

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "Report written to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Start):
			m.err = m.ctrl.Start(context.Background())
			if m.err == nil {
				m.status = "Monitoring started"
			}
			m.snap = m.ctrl.Snapshot()
			return m, nil

		case key.Matches(msg, m.keys.Stop):
			m.err = m.ctrl.Stop()
			if m.err == nil {
				m.status = "Monitoring stopped"
			}
			m.snap = m.ctrl.Snapshot()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.snap = m.ctrl.Snapshot()
			m.status = ""
			return m, nil

		case key.Matches(msg, m.keys.Report):
			ctrl := m.ctrl
			return m, func() tea.Msg {
				path, err := ctrl.Report("")
				return reportMsg{path: path, err: err}
			}
		}
	}

	return m, nil
}
