package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"codeberg.org/veska/keywatch/internal/monitor"
	"codeberg.org/veska/keywatch/internal/stats"
)

const (
	chartHeight   = 8
	minChartWidth = 48
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Keyboard Activity Monitor"))
	b.WriteString("  ")
	b.WriteString(m.stateBadge())
	b.WriteString("\n\n")

	b.WriteString(statsBoxStyle.Render(m.statsBlock()))
	b.WriteString("\n\n")
	b.WriteString(m.hourlyChart())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) stateBadge() string {
	if m.ctrl.State() == monitor.StateRunning {
		return runningStyle.Render("● running")
	}

	return stoppedStyle.Render("○ " + m.ctrl.State().String())
}

func (m Model) statsBlock() string {
	rows := []string{
		fmt.Sprintf("%s %d", labelStyle.Render("Total Keystrokes:"), m.snap.Total),
		fmt.Sprintf("%s %.1f", labelStyle.Render("Keystrokes Per Minute:"), m.snap.PerMinute),
		fmt.Sprintf("%s %s", labelStyle.Render("Peak Hour:"), m.peakLine()),
		fmt.Sprintf("%s %.2f hours", labelStyle.Render("Monitoring Duration:"), m.snap.DurationHours),
	}

	return strings.Join(rows, "\n")
}

func (m Model) peakLine() string {
	if m.snap.PeakCount == 0 {
		return "N/A"
	}

	return fmt.Sprintf("%s (%d keystrokes)", m.snap.PeakRange(), m.snap.PeakCount)
}

// hourlyChart plots the 24 hour buckets; the caption marks the bucket the
// snapshot was taken in.
func (m Model) hourlyChart() string {
	data := make([]float64, len(m.snap.Hourly))
	allZero := true
	for hour, count := range m.snap.Hourly {
		data[hour] = float64(count)
		if count > 0 {
			allZero = false
		}
	}
	if allZero {
		return labelStyle.Render("No keystrokes recorded yet today")
	}

	width := m.width - 12
	if width < minChartWidth {
		width = minChartWidth
	}

	caption := fmt.Sprintf("Keystrokes by hour of day (now: %s)", stats.HourRange(m.snap.Taken.Hour()))

	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
