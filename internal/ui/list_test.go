package ui

import "testing"

func testList(tmpl ItemTemplate) *ItemList {
	return newItemList("win", "list", tmpl, NewBus())
}

// runClick executes a click command and returns the carried event.
func runClick(t *testing.T, l *ItemList, x, y int) Event {
	t.Helper()
	cmd := l.Click(x, y)
	if cmd == nil {
		t.Fatalf("Click(%d,%d) returned no command", x, y)
	}
	msg, ok := cmd().(BusEventMsg)
	if !ok {
		t.Fatalf("Click command should produce a BusEventMsg")
	}
	return msg.Event
}

func TestItemList_RenderIsIdempotent(t *testing.T) {
	l := testList(ItemTemplate{TitleKey: "title", SubtitleKey: "sub"})
	items := []Item{
		{"title": "First", "sub": "one"},
		{"title": "Second"},
	}

	l.Render(items)
	first := l.View(40)
	l.Render(items)
	second := l.View(40)

	if first != second {
		t.Error("Rendering the same items twice should produce identical views")
	}
	if l.Lines() != 3 {
		t.Errorf("Expected 3 lines (2 titles + 1 subtitle), got %d", l.Lines())
	}
}

func TestItemList_EmptyMessage(t *testing.T) {
	l := testList(ItemTemplate{TitleKey: "title"})
	l.SetEmptyMessage("no documents")
	l.Render(nil)

	view := l.View(40)
	if view == "" {
		t.Fatal("Empty list should still render its placeholder")
	}
	if cmd := l.Click(0, 0); cmd != nil {
		t.Error("Clicking the placeholder should do nothing")
	}
}

func TestItemList_RowClickSelects(t *testing.T) {
	l := testList(ItemTemplate{TitleKey: "title", SubtitleKey: "sub"})
	l.Render([]Item{
		{"title": "First", "sub": "one"},
		{"title": "Second", "sub": "two"},
	})
	l.View(40)

	ev := runClick(t, l, 1, 2)
	sel, ok := ev.(ListSelect)
	if !ok {
		t.Fatalf("Expected ListSelect, got %T", ev)
	}
	if sel.Index != 1 {
		t.Errorf("Expected index 1, got %d", sel.Index)
	}
	if sel.Item.Str("title") != "Second" {
		t.Errorf("Expected the second item, got %q", sel.Item.Str("title"))
	}
}

func TestItemList_SubtitleClickSelectsSameItem(t *testing.T) {
	l := testList(ItemTemplate{TitleKey: "title", SubtitleKey: "sub"})
	l.Render([]Item{{"title": "First", "sub": "detail"}})
	l.View(40)

	ev := runClick(t, l, 3, 1)
	sel, ok := ev.(ListSelect)
	if !ok {
		t.Fatalf("Expected ListSelect, got %T", ev)
	}
	if sel.Index != 0 {
		t.Errorf("Subtitle click should select item 0, got %d", sel.Index)
	}
}

func TestItemList_ButtonClickEmitsSingleAction(t *testing.T) {
	l := testList(ItemTemplate{
		TitleKey: "title",
		Buttons:  []ItemButton{{Label: "Remove", Action: "remove"}},
	})
	l.Render([]Item{{"title": "Doc", "source": "a.md"}})
	l.View(30)

	// "[Remove]" is right-aligned: 8 cells ending at the width.
	ev := runClick(t, l, 23, 0)
	act, ok := ev.(ListAction)
	if !ok {
		t.Fatalf("Expected ListAction, got %T", ev)
	}
	if act.Action != "remove" {
		t.Errorf("Expected action %q, got %q", "remove", act.Action)
	}
	if act.Item.Str("source") != "a.md" {
		t.Errorf("Action should carry the item, got %q", act.Item.Str("source"))
	}

	// A click left of the control is a plain selection.
	if _, ok := runClick(t, l, 1, 0).(ListSelect); !ok {
		t.Error("Click outside the control should emit ListSelect")
	}
}

func TestItemList_ToggleButtonLabel(t *testing.T) {
	toggle := &Toggle{Prop: "active", On: "Deactivate", Off: "Activate"}

	if got := buttonLabel(ItemButton{Toggle: toggle}, Item{"active": true}); got != "Deactivate" {
		t.Errorf("Active item label = %q, want Deactivate", got)
	}
	if got := buttonLabel(ItemButton{Toggle: toggle}, Item{"active": false}); got != "Activate" {
		t.Errorf("Inactive item label = %q, want Activate", got)
	}
	if got := buttonLabel(ItemButton{Label: "Open"}, Item{}); got != "Open" {
		t.Errorf("Plain button label = %q, want Open", got)
	}
}

func TestItemList_ClickOutOfRange(t *testing.T) {
	l := testList(ItemTemplate{TitleKey: "title"})
	l.Render([]Item{{"title": "Only"}})
	l.View(40)

	if cmd := l.Click(0, 5); cmd != nil {
		t.Error("Click below the list should do nothing")
	}
	if cmd := l.Click(0, -1); cmd != nil {
		t.Error("Negative row should do nothing")
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"newlines flattened", "a\nb", 10, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ellipsize(tt.in, tt.maxWidth); got != tt.want {
				t.Errorf("Ellipsize(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestEllipsize_WideRunes(t *testing.T) {
	// CJK glyphs are two cells wide; truncation must not split one.
	got := Ellipsize("日本語テキスト", 6)
	if got != "日本…" {
		t.Errorf("Ellipsize wide = %q, want %q", got, "日本…")
	}
}
