package ui

// SplitSession tracks a column splitter drag.
type SplitSession struct {
	StartX     int
	startRatio float64
}

// NewSplitSession starts tracking a splitter drag.
func NewSplitSession(v *ViewContext, x int) *SplitSession {
	return &SplitSession{
		StartX:     x,
		startRatio: v.SplitRatio,
	}
}

// Move adjusts the split ratio proportionally to the pointer delta.
// Clamping happens in the view context.
func (s *SplitSession) Move(v *ViewContext, x int) {
	usable := v.TerminalWidth - SplitterWidth
	if usable <= 0 {
		return
	}
	delta := float64(x-s.StartX) / float64(usable)
	v.SetSplitRatio(s.startRatio + delta)
}

// EndSplit persists the final ratio.
func (m *Manager) EndSplit(v *ViewContext) {
	m.prefs.SetSplitRatio(v.SplitRatio)
}
