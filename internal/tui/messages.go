package tui

// StatsChangedMsg is the payload-free redraw signal posted by the
// notification bridge. The model pulls a fresh snapshot when it arrives;
// no aggregate data ever rides along with the message.
type StatsChangedMsg struct{}

// reportMsg carries the outcome of an on-demand report generation.
type reportMsg struct {
	path string
	err  error
}
