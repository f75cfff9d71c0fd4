package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		key    Filter
		want   bool
	}{
		{"exact match", Filter{"win", "elem"}, Filter{"win", "elem"}, true},
		{"window mismatch", Filter{"win", "elem"}, Filter{"other", "elem"}, false},
		{"element mismatch", Filter{"win", "elem"}, Filter{"win", "other"}, false},
		{"wildcard window", Filter{"", "elem"}, Filter{"any", "elem"}, true},
		{"wildcard element", Filter{"win", ""}, Filter{"win", "any"}, true},
		{"full wildcard", Filter{}, Filter{"any", "thing"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.key); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.filter, tt.key, got, tt.want)
			}
		})
	}
}

func TestBus_DispatchOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(Filter{WinID: "w"}, func(Event) tea.Cmd {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(Filter{WinID: "w"}, func(Event) tea.Cmd {
		order = append(order, "second")
		return nil
	})
	bus.Subscribe(Filter{WinID: "other"}, func(Event) tea.Cmd {
		order = append(order, "skipped")
		return nil
	})

	bus.Publish(Action{WinID: "w", ElementID: "e"})

	if len(order) != 2 {
		t.Fatalf("Expected 2 handlers called, got %d: %v", len(order), order)
	}
	if order[0] != "first" || order[1] != "second" {
		t.Errorf("Handlers ran out of registration order: %v", order)
	}
}

func TestBus_ReturnsSingleCmdUnbatched(t *testing.T) {
	bus := NewBus()
	want := func() tea.Msg { return nil }

	bus.Subscribe(Filter{}, func(Event) tea.Cmd { return want })
	bus.Subscribe(Filter{}, func(Event) tea.Cmd { return nil })

	cmd := bus.Publish(Action{WinID: "w"})
	if cmd == nil {
		t.Fatal("Expected the handler's command back")
	}
}

func TestBus_NoMatchReturnsNil(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(Filter{WinID: "w"}, func(Event) tea.Cmd {
		return func() tea.Msg { return nil }
	})

	if cmd := bus.Publish(Action{WinID: "elsewhere"}); cmd != nil {
		t.Error("Expected nil command when no filter matches")
	}
}

func TestItem_Accessors(t *testing.T) {
	item := Item{"title": "Doc", "active": true, "count": 3}

	if got := item.Str("title"); got != "Doc" {
		t.Errorf("Str(title) = %q, want %q", got, "Doc")
	}
	if got := item.Str("missing"); got != "" {
		t.Errorf("Str(missing) = %q, want empty", got)
	}
	if got := item.Str("count"); got != "" {
		t.Errorf("Str on non-string = %q, want empty", got)
	}
	if !item.Bool("active") {
		t.Error("Bool(active) = false, want true")
	}
	if item.Bool("title") {
		t.Error("Bool on non-bool = true, want false")
	}
}
