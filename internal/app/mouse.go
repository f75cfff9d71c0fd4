package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/ui"
)

// handleMouse routes one mouse event through the computed layout. The
// layout is recomputed per event so hit testing always matches what the
// last frame drew.
func (m *Model) handleMouse(msg tea.Msg) tea.Cmd {
	layout := m.mgr.ComputeLayout(ui.GetViewContext())

	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return nil
		}
		return m.handlePress(layout, msg.X, msg.Y)

	case tea.MouseWheelMsg:
		return m.handleWheel(layout, msg)

	case tea.MouseMotionMsg:
		m.handleMotion(layout, msg.X, msg.Y)
		return nil

	case tea.MouseReleaseMsg:
		m.handleRelease()
		return nil
	}
	return nil
}

// handlePress resolves a left press to window chrome, the splitter, or
// content. A press while a pointer session is active is ignored.
func (m *Model) handlePress(layout *ui.Layout, x, y int) tea.Cmd {
	if m.sessions.Active() {
		return nil
	}

	t := layout.Hit(x, y)
	switch t.Kind {
	case ui.TargetMinimize:
		t.Win.ToggleCollapsed()
		return nil

	case ui.TargetClose:
		m.mgr.Close(t.Win.ID)
		return nil

	case ui.TargetTitlebar:
		var col *ui.Column
		if !t.Win.Modal {
			if m.mgr.Left.Contains(t.Win) {
				col = m.mgr.Left
			} else {
				col = m.mgr.Right
			}
		}
		m.sessions.BeginDrag(ui.NewDragSession(t.Win, col, x, y))
		m.mgr.FocusWindow(t.Win.ID)
		return nil

	case ui.TargetResizer:
		m.sessions.BeginResize(ui.NewResizeSession(t.Win, y))
		return nil

	case ui.TargetSplitter:
		m.sessions.BeginSplit(ui.NewSplitSession(ui.GetViewContext(), x))
		return nil

	case ui.TargetContent:
		m.mgr.FocusWindow(t.Win.ID)
		if t.Win.Content != nil {
			return t.Win.Content.Click(t.LocalX, t.LocalY)
		}
		return nil
	}
	return nil
}

// handleWheel scrolls the content under the pointer.
func (m *Model) handleWheel(layout *ui.Layout, msg tea.MouseWheelMsg) tea.Cmd {
	t := layout.Hit(msg.X, msg.Y)
	if t.Win == nil || t.Win.Content == nil {
		return nil
	}
	s, ok := t.Win.Content.(ui.Scroller)
	if !ok {
		return nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		s.Scroll(1)
	case tea.MouseWheelDown:
		s.Scroll(-1)
	}
	return nil
}

// handleMotion feeds pointer movement to the active session.
func (m *Model) handleMotion(layout *ui.Layout, x, y int) {
	switch m.sessions.Kind() {
	case ui.SessionDrag:
		m.sessions.Drag.Move(layout, x, y)
	case ui.SessionResize:
		m.sessions.Resize.Move(ui.GetViewContext(), y)
	case ui.SessionSplit:
		m.sessions.Split.Move(ui.GetViewContext(), x)
	}
}

// handleRelease completes the active session and persists its result.
func (m *Model) handleRelease() {
	switch m.sessions.Kind() {
	case ui.SessionDrag:
		m.mgr.CompleteDrag(m.sessions.Drag)
	case ui.SessionResize:
		m.mgr.EndResize(m.sessions.Resize)
	case ui.SessionSplit:
		m.mgr.EndSplit(ui.GetViewContext())
	default:
		return
	}
	m.sessions.End()
	if err := m.cfg.Save(); err != nil {
		logger.Warn("App: config save failed: %v", err)
	}
}
