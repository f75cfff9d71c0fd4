package ui

import (
	"strings"
	"testing"
)

func TestSessions_SingleActiveSession(t *testing.T) {
	var s Sessions
	win := &Window{ID: "w"}

	if !s.BeginDrag(NewDragSession(win, nil, 5, 5)) {
		t.Fatal("First BeginDrag should succeed")
	}
	if s.BeginResize(NewResizeSession(win, 5)) {
		t.Error("BeginResize should be rejected while a drag is active")
	}
	if s.BeginDrag(NewDragSession(win, nil, 1, 1)) {
		t.Error("Nested BeginDrag should be rejected")
	}

	s.End()
	if s.Active() {
		t.Error("End should clear the session")
	}
	if !s.BeginResize(NewResizeSession(win, 5)) {
		t.Error("BeginResize should succeed after End")
	}
}

func TestCompleteDrag_MovesBetweenColumns(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("a")

	d := NewDragSession(win, m.Left, 2, HeaderHeight+1)
	d.Move(l, 70, HeaderHeight+2)

	if d.TargetCol != m.Right {
		t.Fatalf("Drag should target the right column")
	}

	m.CompleteDrag(d)

	if m.Left.Contains(win) {
		t.Error("Window should have left its source column")
	}
	if m.Right.Index(win) != 0 {
		t.Errorf("Window should land at index 0, got %d", m.Right.Index(win))
	}
	if !win.Focused() {
		t.Error("Dropped window should take focus")
	}
}

func TestCompleteDrag_NoTargetSnapsBack(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("a")

	d := NewDragSession(win, m.Left, 2, HeaderHeight+1)
	d.Move(l, 2, 0) // Header row is outside any column

	if d.TargetCol != nil {
		t.Fatal("Pointer outside the content area should clear the target")
	}

	m.CompleteDrag(d)

	if m.Left.Index(win) != 0 {
		t.Error("Window should stay where it started")
	}
}

func TestCompleteDrag_ReorderWithinColumn(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("a")

	d := NewDragSession(win, m.Left, 2, HeaderHeight+1)
	d.Move(l, 2, HeaderHeight+30)

	m.CompleteDrag(d)

	if m.Left.Index(win) != 1 {
		t.Errorf("Window a should move below b, got index %d", m.Left.Index(win))
	}
	if len(m.Left.Windows) != 2 {
		t.Errorf("Column should still hold 2 windows, got %d", len(m.Left.Windows))
	}
}

// markerLine returns the index of the drop marker in a rendered column,
// or -1 when no marker is shown.
func markerLine(view string) int {
	for i, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "▔") {
			return i
		}
	}
	return -1
}

func TestColumnView_DropMarkerMatchesDropPosition(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("a")

	// Pointer below b's midpoint: the drop lands below b, so the preview
	// marker must render below b as well, not between a and b.
	d := NewDragSession(win, m.Left, 2, HeaderHeight+1)
	d.Move(l, 2, HeaderHeight+30)
	if d.MarkerIndex != 1 {
		t.Fatalf("MarkerIndex = %d, want 1", d.MarkerIndex)
	}

	// Windows a and b render 10 rows each; with a still drawn in place,
	// the marker belongs on the row after b.
	view := m.Left.View(40, 30, d)
	if got := markerLine(view); got != 20 {
		t.Errorf("Marker at line %d, want 20 (below window b)", got)
	}
}

func TestColumnView_DropMarkerAboveFirstSibling(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("b")

	d := NewDragSession(win, m.Left, 2, HeaderHeight+11)
	d.Move(l, 2, HeaderHeight+1) // Above a's midpoint
	if d.MarkerIndex != 0 {
		t.Fatalf("MarkerIndex = %d, want 0", d.MarkerIndex)
	}

	view := m.Left.View(40, 30, d)
	if got := markerLine(view); got != 0 {
		t.Errorf("Marker at line %d, want 0 (above window a)", got)
	}
}

func TestDragSession_ModalOnlyAccumulatesOffset(t *testing.T) {
	m, _, v := layoutFixture(t)
	modal, _ := m.Spawn(WindowConfig{ID: "modal", Modal: true, Height: 10})
	l := m.ComputeLayout(v)

	d := NewDragSession(modal, nil, 30, 10)
	d.Move(l, 35, 13)

	if modal.OffsetX != 5 || modal.OffsetY != 3 {
		t.Errorf("Modal offset = (%d,%d), want (5,3)", modal.OffsetX, modal.OffsetY)
	}
	if d.TargetCol != nil {
		t.Error("Modal drags never target a column")
	}

	// Completing a modal drag is a no-op on the columns.
	m.CompleteDrag(d)
	if len(m.Left.Windows) != 2 || len(m.Right.Windows) != 1 {
		t.Error("Modal drop should not touch the columns")
	}
}

func TestResizeSession_ClampsHeight(t *testing.T) {
	v := GetViewContext()
	v.UpdateTerminalSize(101, 42)

	win := &Window{ID: "c", Height: 20, Resizable: true}
	r := NewResizeSession(win, 25)

	r.Move(v, 26)
	if win.Height != 21 {
		t.Errorf("Height should track the pointer, got %d", win.Height)
	}

	r.Move(v, -100)
	if win.Height != MinWindowHeight {
		t.Errorf("Height should clamp at %d, got %d", MinWindowHeight, win.Height)
	}

	r.Move(v, 500)
	if win.Height != v.MaxWindowHeight() {
		t.Errorf("Height should clamp at %d, got %d", v.MaxWindowHeight(), win.Height)
	}
}

func TestEndResize_PersistsHeight(t *testing.T) {
	prefs := newStubPrefs()
	m := NewManager(prefs)
	win, _ := m.Spawn(WindowConfig{ID: "chat", Col: ColRight, Height: 20})

	r := NewResizeSession(win, 10)
	r.Move(GetViewContext(), 14)
	m.EndResize(r)

	if h, ok := prefs.heights["chat"]; !ok || h != win.Height {
		t.Errorf("Persisted height = %d, want %d", h, win.Height)
	}
}

func TestSplitSession_ClampsRatio(t *testing.T) {
	v := GetViewContext()
	v.UpdateTerminalSize(101, 42)
	v.SetSplitRatio(0.5)

	s := NewSplitSession(v, 50)

	s.Move(v, 60)
	if v.SplitRatio <= 0.5 {
		t.Errorf("Ratio should grow with a rightward drag, got %v", v.SplitRatio)
	}

	s.Move(v, 500)
	if v.SplitRatio != MaxSplitRatio {
		t.Errorf("Ratio should clamp at %v, got %v", MaxSplitRatio, v.SplitRatio)
	}

	s.Move(v, -500)
	if v.SplitRatio != MinSplitRatio {
		t.Errorf("Ratio should clamp at %v, got %v", MinSplitRatio, v.SplitRatio)
	}
}

func TestEndSplit_PersistsRatio(t *testing.T) {
	v := GetViewContext()
	v.UpdateTerminalSize(101, 42)
	v.SetSplitRatio(0.6)

	prefs := newStubPrefs()
	m := NewManager(prefs)
	m.EndSplit(v)

	if prefs.ratio != 0.6 {
		t.Errorf("Persisted ratio = %v, want 0.6", prefs.ratio)
	}
}
