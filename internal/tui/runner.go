package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/veska/keywatch/internal/monitor"
	"codeberg.org/veska/keywatch/internal/notify"
)

// Run attaches the notification bridge to the controller and blocks inside
// the Bubble Tea event loop until the user quits. Monitoring itself starts
// and stops from inside the UI; the caller remains responsible for the
// final Shutdown.
func Run(ctx context.Context, ctrl *monitor.Controller) error {
	program := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())

	// tea.Program.Send is safe from any goroutine, which makes it the
	// bridge between the capture callback and the render loop.
	ctrl.AttachNotifier(notify.Func(func() {
		program.Send(StatsChangedMsg{})
	}))

	go func() {
		<-ctx.Done()
		program.Send(tea.Quit())
	}()

	_, err := program.Run()

	return err
}
