package ui

import "github.com/docdesk/docdesk/internal/logger"

// SessionKind identifies the active pointer session, if any.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionDrag
	SessionResize
	SessionSplit
)

// Sessions holds at most one active pointer session. A pointer-down while
// a session is active is rejected; motion and release always route to the
// current session.
type Sessions struct {
	kind   SessionKind
	Drag   *DragSession
	Resize *ResizeSession
	Split  *SplitSession
}

// Active reports whether any session is in progress.
func (s *Sessions) Active() bool {
	return s.kind != SessionNone
}

// Kind returns the active session kind.
func (s *Sessions) Kind() SessionKind {
	return s.kind
}

// BeginDrag starts a drag session. Returns false if a session is already
// active.
func (s *Sessions) BeginDrag(d *DragSession) bool {
	if s.kind != SessionNone {
		return false
	}
	s.kind = SessionDrag
	s.Drag = d
	return true
}

// BeginResize starts a resize session. Returns false if a session is
// already active.
func (s *Sessions) BeginResize(r *ResizeSession) bool {
	if s.kind != SessionNone {
		return false
	}
	s.kind = SessionResize
	s.Resize = r
	return true
}

// BeginSplit starts a splitter session. Returns false if a session is
// already active.
func (s *Sessions) BeginSplit(sp *SplitSession) bool {
	if s.kind != SessionNone {
		return false
	}
	s.kind = SessionSplit
	s.Split = sp
	return true
}

// End clears the active session.
func (s *Sessions) End() {
	s.kind = SessionNone
	s.Drag = nil
	s.Resize = nil
	s.Split = nil
}

// DragSession tracks one window drag from pointer-down to release.
// Modal drags only accumulate an offset; free drags track a target column
// and insertion index for the drop marker.
type DragSession struct {
	Win   *Window
	Modal bool

	FromCol   *Column
	FromIndex int

	StartX, StartY int
	CurX, CurY     int

	startOffsetX, startOffsetY int

	// TargetCol is nil while the pointer is outside any column.
	TargetCol   *Column
	MarkerIndex int
}

// NewDragSession starts tracking a drag from a titlebar press.
func NewDragSession(win *Window, fromCol *Column, x, y int) *DragSession {
	d := &DragSession{
		Win:          win,
		Modal:        win.Modal,
		FromCol:      fromCol,
		StartX:       x,
		StartY:       y,
		CurX:         x,
		CurY:         y,
		startOffsetX: win.OffsetX,
		startOffsetY: win.OffsetY,
	}
	if fromCol != nil {
		d.FromIndex = fromCol.Index(win)
	}
	return d
}

// Move updates the session from a pointer motion. Position follows the
// pointer delta from the press point; free drags also retarget the drop
// column and marker index.
func (d *DragSession) Move(l *Layout, x, y int) {
	d.CurX = x
	d.CurY = y

	if d.Modal {
		d.Win.OffsetX = d.startOffsetX + (x - d.StartX)
		d.Win.OffsetY = d.startOffsetY + (y - d.StartY)
		return
	}

	d.TargetCol = l.ColumnAt(x, y)
	if d.TargetCol != nil {
		d.MarkerIndex = l.InsertionIndex(d.TargetCol, y, d.Win)
	}
}

// CompleteDrag applies a drop. A drop with no target column snaps the
// window back to where it started; otherwise the window moves to the
// marker position and takes focus.
func (m *Manager) CompleteDrag(d *DragSession) {
	if d == nil || d.Modal {
		return
	}
	if d.TargetCol == nil {
		logger.Debug("Drag: no target, snapping back id=%s", d.Win.ID)
		return
	}

	if d.FromCol != nil {
		d.FromCol.Remove(d.Win)
	}
	d.TargetCol.InsertAt(d.Win, d.MarkerIndex)
	m.FocusWindow(d.Win.ID)
	logger.Debug("Drag: dropped id=%s index=%d", d.Win.ID, d.MarkerIndex)
}
