package ui

// ResizeSession tracks one window height adjustment from a resize-handle
// press to release.
type ResizeSession struct {
	Win    *Window
	StartY int
	startH int
}

// NewResizeSession starts tracking a resize from a handle press.
func NewResizeSession(win *Window, y int) *ResizeSession {
	return &ResizeSession{
		Win:    win,
		StartY: y,
		startH: win.Rows(),
	}
}

// Move applies the pointer delta to the window height, clamped to the
// minimum window height and the content-area cap.
func (r *ResizeSession) Move(v *ViewContext, y int) {
	h := r.startH + (y - r.StartY)
	if h < MinWindowHeight {
		h = MinWindowHeight
	}
	if max := v.MaxWindowHeight(); h > max {
		h = max
	}
	r.Win.Height = h
}

// End persists the final height for the window id.
func (m *Manager) EndResize(r *ResizeSession) {
	if r == nil {
		return
	}
	m.prefs.SetWindowHeight(r.Win.ID, r.Win.Height)
}
