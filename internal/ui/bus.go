package ui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
)

// Item is one row of list data. Controllers hand these to ItemList.Render
// and receive them back in bus events; the window manager core never
// interprets the keys beyond what an ItemTemplate names.
type Item map[string]any

// Str returns a string value from the item, or "" when absent.
func (it Item) Str(key string) string {
	if s, ok := it[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns a bool value from the item, or false when absent.
func (it Item) Bool(key string) bool {
	if b, ok := it[key].(bool); ok {
		return b
	}
	return false
}

// Filter selects events by window and element id. Empty fields match
// anything.
type Filter struct {
	WinID     string
	ElementID string
}

// Matches reports whether the filter accepts an event key.
func (f Filter) Matches(key Filter) bool {
	if f.WinID != "" && f.WinID != key.WinID {
		return false
	}
	if f.ElementID != "" && f.ElementID != key.ElementID {
		return false
	}
	return true
}

// Event is anything the bus can dispatch.
type Event interface {
	Key() Filter
}

// ListAction is emitted when a control inside a list item is activated.
// A control click never also emits a ListSelect.
type ListAction struct {
	WinID     string
	ElementID string
	Action    string
	Item      Item
	Index     int
}

// Key implements Event.
func (e ListAction) Key() Filter { return Filter{e.WinID, e.ElementID} }

// ListSelect is emitted when a list row (outside any control) is clicked.
type ListSelect struct {
	WinID     string
	ElementID string
	Item      Item
	Index     int
}

// Key implements Event.
func (e ListSelect) Key() Filter { return Filter{e.WinID, e.ElementID} }

// Action is emitted by plain form buttons and input submission.
type Action struct {
	WinID     string
	ElementID string
	Action    string
}

// Key implements Event.
func (e Action) Key() Filter { return Filter{e.WinID, e.ElementID} }

// Handler consumes an event and may return a command.
type Handler func(Event) tea.Cmd

type subscription struct {
	filter Filter
	fn     Handler
}

// Bus is the typed observer registry for panel controllers. It is owned by
// the Manager, created at startup, and never torn down. Dispatch is
// synchronous, in registration order; subscribers self-filter beyond the
// (winID, elementID) key.
type Bus struct {
	mu   sync.Mutex
	subs []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for events matching the filter.
func (b *Bus) Subscribe(f Filter, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{filter: f, fn: fn})
}

// Publish dispatches an event to all matching handlers in registration
// order and batches the commands they return.
func (b *Bus) Publish(ev Event) tea.Cmd {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	key := ev.Key()
	var cmds []tea.Cmd
	for _, s := range subs {
		if !s.filter.Matches(key) {
			continue
		}
		if cmd := s.fn(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	logger.Debug("Bus: published %T win=%s elem=%s handlers=%d", ev, key.WinID, key.ElementID, len(cmds))

	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
