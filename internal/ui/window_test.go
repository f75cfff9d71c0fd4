package ui

import (
	"strings"
	"testing"
)

// stubPrefs is an in-memory PrefStore for tests.
type stubPrefs struct {
	heights map[string]int
	ratio   float64
}

func newStubPrefs() *stubPrefs {
	return &stubPrefs{heights: make(map[string]int)}
}

func (p *stubPrefs) WindowHeight(id string) (int, bool) {
	h, ok := p.heights[id]
	return h, ok
}

func (p *stubPrefs) SetWindowHeight(id string, h int) {
	p.heights[id] = h
}

func (p *stubPrefs) GetSplitRatio() float64 { return p.ratio }

func (p *stubPrefs) SetSplitRatio(r float64) { p.ratio = r }

func TestManager_SpawnAssignsColumns(t *testing.T) {
	m := NewManager(newStubPrefs())

	left, err := m.Spawn(WindowConfig{ID: "a", Title: "A", Col: ColLeft})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	right, err := m.Spawn(WindowConfig{ID: "b", Title: "B", Col: ColRight})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if !m.Left.Contains(left) {
		t.Error("Window a should be in the left column")
	}
	if !m.Right.Contains(right) {
		t.Error("Window b should be in the right column")
	}
	if !right.Focused() {
		t.Error("Most recently spawned window should have focus")
	}
}

func TestManager_SpawnUniqueFocusesExisting(t *testing.T) {
	m := NewManager(newStubPrefs())

	first, err := m.Spawn(WindowConfig{ID: "docs", Unique: true, Col: ColLeft})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	m.Spawn(WindowConfig{ID: "other", Col: ColLeft})

	second, err := m.Spawn(WindowConfig{ID: "docs", Unique: true, Col: ColLeft})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if first != second {
		t.Error("Unique spawn should return the existing window")
	}
	if !first.Focused() {
		t.Error("Unique spawn should focus the existing window")
	}
	if len(m.Left.Windows) != 2 {
		t.Errorf("Expected 2 windows in the left column, got %d", len(m.Left.Windows))
	}
}

func TestManager_SpawnCollisionMintsFreshID(t *testing.T) {
	m := NewManager(newStubPrefs())

	m.Spawn(WindowConfig{ID: "dup", Col: ColLeft})
	second, err := m.Spawn(WindowConfig{ID: "dup", Col: ColLeft})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if second.ID == "dup" {
		t.Error("Colliding spawn should get a fresh id")
	}
	if !strings.HasPrefix(second.ID, "mw-") {
		t.Errorf("Minted id %q should have the mw- prefix", second.ID)
	}
	if len(m.Left.Windows) != 2 {
		t.Errorf("Both windows should coexist, got %d", len(m.Left.Windows))
	}
}

func TestManager_UnknownTypeFails(t *testing.T) {
	m := NewManager(newStubPrefs())

	if _, err := m.Spawn(WindowConfig{ID: "x", Type: "window_bogus"}); err == nil {
		t.Fatal("Expected an error for an unknown window type")
	}
}

func TestManager_CloseModalRemovesOverlay(t *testing.T) {
	m := NewManager(newStubPrefs())

	win, err := m.Spawn(WindowConfig{ID: "settings", Modal: true})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if m.TopModal() != win {
		t.Fatal("Modal should be on top after spawn")
	}

	m.Close(win.ID)

	if m.TopModal() != nil {
		t.Error("Modal stack should be empty after close")
	}
	if _, ok := m.Window(win.ID); ok {
		t.Error("Closed window should leave the live registry")
	}
}

func TestManager_CloseDropsRegisteredLists(t *testing.T) {
	m := NewManager(newStubPrefs())

	m.Spawn(WindowConfig{
		ID:  "docs",
		Col: ColLeft,
		Elements: []ElementSpec{
			{Type: ElementItemList, ID: "doc_list", Template: ItemTemplate{TitleKey: "title"}},
		},
	})
	if _, ok := m.List("docs", "doc_list"); !ok {
		t.Fatal("List should be registered on spawn")
	}

	m.Close("docs")

	if _, ok := m.List("docs", "doc_list"); ok {
		t.Error("List registration should be dropped on close")
	}
}

func TestWindow_ToggleCollapsedRoundTrip(t *testing.T) {
	w := &Window{Height: 17}

	w.ToggleCollapsed()
	if !w.Collapsed {
		t.Fatal("Window should be collapsed")
	}
	if w.Rows() != ChromeRows {
		t.Errorf("Collapsed window should occupy %d rows, got %d", ChromeRows, w.Rows())
	}

	w.ToggleCollapsed()
	if w.Collapsed {
		t.Fatal("Window should be restored")
	}
	if w.Height != 17 {
		t.Errorf("Height should survive a minimize round trip, got %d", w.Height)
	}
}

func TestWindow_RowsDefaults(t *testing.T) {
	w := &Window{}
	if w.Rows() != DefaultWindowHeight {
		t.Errorf("Expected default height %d, got %d", DefaultWindowHeight, w.Rows())
	}

	w.Height = 9
	if w.Rows() != 9 {
		t.Errorf("Expected explicit height 9, got %d", w.Rows())
	}
}

func TestManager_CycleFocusOrder(t *testing.T) {
	m := NewManager(newStubPrefs())

	a, _ := m.Spawn(WindowConfig{ID: "a", Col: ColLeft})
	b, _ := m.Spawn(WindowConfig{ID: "b", Col: ColLeft})
	c, _ := m.Spawn(WindowConfig{ID: "c", Col: ColRight})

	m.FocusWindow("a")

	m.CycleFocus()
	if !b.Focused() {
		t.Error("Focus should move to the next left-column window")
	}
	m.CycleFocus()
	if !c.Focused() {
		t.Error("Focus should cross into the right column")
	}
	m.CycleFocus()
	if !a.Focused() {
		t.Error("Focus should wrap back to the first window")
	}
}

func TestManager_CreateWindowRestoresPersistedHeight(t *testing.T) {
	prefs := newStubPrefs()
	prefs.heights["chat"] = 25

	m := NewManager(prefs)
	win, err := m.Spawn(WindowConfig{ID: "chat", Col: ColRight, Height: 10})
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if win.Height != 25 {
		t.Errorf("Persisted height should win over the config height, got %d", win.Height)
	}
}
