package ui

import "testing"

func layoutFixture(t *testing.T) (*Manager, *Layout, *ViewContext) {
	t.Helper()
	v := GetViewContext()
	v.UpdateTerminalSize(101, 42)
	v.SetSplitRatio(0.5)

	m := NewManager(newStubPrefs())
	m.Spawn(WindowConfig{ID: "a", Col: ColLeft, Height: 10})
	m.Spawn(WindowConfig{ID: "b", Col: ColLeft, Height: 10})
	m.Spawn(WindowConfig{ID: "c", Col: ColRight, Height: 20, Resizable: true})

	return m, m.ComputeLayout(v), v
}

func TestComputeLayout_StacksWindows(t *testing.T) {
	_, l, v := layoutFixture(t)

	if len(l.Left) != 2 {
		t.Fatalf("Expected 2 left window layouts, got %d", len(l.Left))
	}
	if l.Left[0].Region.Y != HeaderHeight {
		t.Errorf("First window should start below the header, got Y=%d", l.Left[0].Region.Y)
	}
	if l.Left[1].Region.Y != HeaderHeight+10 {
		t.Errorf("Second window should start below the first, got Y=%d", l.Left[1].Region.Y)
	}
	if l.RightRegion.X != v.LeftWidth+SplitterWidth {
		t.Errorf("Right column should start after the splitter, got X=%d", l.RightRegion.X)
	}
}

func TestLayout_HitChrome(t *testing.T) {
	m, l, _ := layoutFixture(t)
	win, _ := m.Window("a")
	r := l.Left[0].Region

	tests := []struct {
		name string
		x, y int
		kind TargetKind
	}{
		{"titlebar", r.X + 2, r.Y + 1, TargetTitlebar},
		{"minimize", r.X + r.W - 5, r.Y + 1, TargetMinimize},
		{"close", r.X + r.W - 3, r.Y + 1, TargetClose},
		{"content", r.X + 3, r.Y + 3, TargetContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Hit(tt.x, tt.y)
			if got.Kind != tt.kind {
				t.Fatalf("Hit(%d,%d).Kind = %v, want %v", tt.x, tt.y, got.Kind, tt.kind)
			}
			if got.Win != win {
				t.Errorf("Hit should resolve to window a")
			}
		})
	}
}

func TestLayout_HitContentLocalCoords(t *testing.T) {
	_, l, _ := layoutFixture(t)
	r := l.Left[0].Region

	got := l.Hit(r.X+5, r.Y+4)
	if got.Kind != TargetContent {
		t.Fatalf("Expected content target, got %v", got.Kind)
	}
	if got.LocalX != 4 || got.LocalY != 2 {
		t.Errorf("Local coords = (%d,%d), want (4,2)", got.LocalX, got.LocalY)
	}
}

func TestLayout_HitResizerOnlyWhenResizable(t *testing.T) {
	m, l, _ := layoutFixture(t)

	// Window a is not resizable; its bottom border is not a handle.
	ra := l.Left[0].Region
	if got := l.Hit(ra.X+2, ra.Y+ra.H-1); got.Kind == TargetResizer {
		t.Error("Non-resizable window should not expose a resize handle")
	}

	// Window c is resizable.
	rc := l.Right[0].Region
	got := l.Hit(rc.X+2, rc.Y+rc.H-1)
	if got.Kind != TargetResizer {
		t.Fatalf("Expected resizer, got %v", got.Kind)
	}
	if win, _ := m.Window("c"); got.Win != win {
		t.Error("Resizer should belong to window c")
	}
}

func TestLayout_HitSplitter(t *testing.T) {
	_, l, v := layoutFixture(t)

	got := l.Hit(v.SplitterX, HeaderHeight+5)
	if got.Kind != TargetSplitter {
		t.Errorf("Expected splitter, got %v", got.Kind)
	}
}

func TestLayout_HitColumnEmptySpace(t *testing.T) {
	m, l, v := layoutFixture(t)

	// Below both left windows but inside the column region.
	got := l.Hit(2, HeaderHeight+25)
	if got.Kind != TargetColumn {
		t.Fatalf("Expected column, got %v", got.Kind)
	}
	if got.Col != m.Left {
		t.Error("Empty space should resolve to the left column")
	}

	// Outside the content area entirely.
	if got := l.Hit(2, v.TerminalHeight-1); got.Kind != TargetNone {
		t.Errorf("Footer row should resolve to nothing, got %v", got.Kind)
	}
}

func TestLayout_ModalExclusive(t *testing.T) {
	m, _, v := layoutFixture(t)
	m.Spawn(WindowConfig{ID: "modal", Modal: true, Height: 10})
	l := m.ComputeLayout(v)

	if l.Modal == nil {
		t.Fatal("Expected a modal layout")
	}

	r := l.Modal.Region
	if got := l.Hit(r.X+2, r.Y+1); got.Kind != TargetTitlebar {
		t.Errorf("Modal titlebar should be hittable, got %v", got.Kind)
	}

	// A window under the backdrop is not interactive.
	if got := l.Hit(2, HeaderHeight+2); got.Kind != TargetNone {
		t.Errorf("Backdrop click should resolve to nothing, got %v", got.Kind)
	}
}

func TestLayout_ColumnAt(t *testing.T) {
	m, l, v := layoutFixture(t)

	if got := l.ColumnAt(2, HeaderHeight+2); got != m.Left {
		t.Error("Left-side pointer should resolve to the left column")
	}
	if got := l.ColumnAt(v.LeftWidth+5, HeaderHeight+2); got != m.Right {
		t.Error("Right-side pointer should resolve to the right column")
	}
	if got := l.ColumnAt(2, 0); got != nil {
		t.Error("Header row should resolve to no column")
	}
}

func TestLayout_InsertionIndex(t *testing.T) {
	m, l, _ := layoutFixture(t)
	dragged, _ := m.Window("c")

	// Above the first left window's midpoint.
	if got := l.InsertionIndex(m.Left, HeaderHeight+2, dragged); got != 0 {
		t.Errorf("Pointer above the first midpoint should insert at 0, got %d", got)
	}
	// Between the midpoints of the two windows.
	if got := l.InsertionIndex(m.Left, HeaderHeight+12, dragged); got != 1 {
		t.Errorf("Pointer between midpoints should insert at 1, got %d", got)
	}
	// Below everything.
	if got := l.InsertionIndex(m.Left, HeaderHeight+30, dragged); got != 2 {
		t.Errorf("Pointer below all midpoints should append, got %d", got)
	}
}

func TestLayout_InsertionIndexSkipsDragged(t *testing.T) {
	m, l, _ := layoutFixture(t)
	dragged, _ := m.Window("a")

	// Window a occupies index 0; dragging it over its own slot should
	// still produce index 0 relative to the remaining windows.
	if got := l.InsertionIndex(m.Left, HeaderHeight+2, dragged); got != 0 {
		t.Errorf("Dragged window should be skipped, got %d", got)
	}
	if got := l.InsertionIndex(m.Left, HeaderHeight+30, dragged); got != 1 {
		t.Errorf("Only the sibling should count, got %d", got)
	}
}
