package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// buttonSpan records the horizontal extent of one rendered item control.
// End is exclusive.
type buttonSpan struct {
	Start, End int
	Action     string
}

// listLine maps one rendered line back to its item and controls.
type listLine struct {
	ItemIndex int
	Buttons   []buttonSpan
}

// ItemList is a registered list component keyed by (winID, elementID).
// Controllers look it up via Manager.List and replace its contents with
// Render; the list owns row rendering and click resolution.
type ItemList struct {
	winID  string
	elemID string
	tmpl   ItemTemplate
	bus    *Bus

	items []Item
	lines []listLine
	width int
	empty string // Message shown when there are no items
}

func newItemList(winID, elemID string, tmpl ItemTemplate, bus *Bus) *ItemList {
	return &ItemList{
		winID:  winID,
		elemID: elemID,
		tmpl:   tmpl,
		bus:    bus,
		empty:  "(empty)",
	}
}

// Render replaces the list contents wholly. Rendering the same items twice
// yields the same view; no state accumulates across calls.
func (l *ItemList) Render(items []Item) {
	l.items = make([]Item, len(items))
	copy(l.items, items)
}

// Items returns the current items. The slice is shared; callers must not
// mutate it.
func (l *ItemList) Items() []Item {
	return l.items
}

// Len returns the number of items.
func (l *ItemList) Len() int {
	return len(l.items)
}

// SetEmptyMessage changes the placeholder shown for an empty list.
func (l *ItemList) SetEmptyMessage(msg string) {
	l.empty = msg
}

// buttonLabel resolves a control's label, consulting the item for
// two-state toggles.
func buttonLabel(btn ItemButton, item Item) string {
	if btn.Toggle != nil {
		if item.Bool(btn.Toggle.Prop) {
			return btn.Toggle.On
		}
		return btn.Toggle.Off
	}
	return btn.Label
}

// View renders the list at the given width and records line spans for
// click resolution.
func (l *ItemList) View(width int) string {
	l.width = width
	l.lines = l.lines[:0]

	if len(l.items) == 0 {
		l.lines = append(l.lines, listLine{ItemIndex: -1})
		return NoteStyle.Render(Ellipsize(l.empty, width))
	}

	var out []string
	for i, item := range l.items {
		title := item.Str(l.tmpl.TitleKey)
		if title == "" {
			title = item.Str("id")
		}

		// Controls are laid out right-aligned on the title line.
		var controls string
		var spans []buttonSpan
		if len(l.tmpl.Buttons) > 0 {
			var parts []string
			for _, btn := range l.tmpl.Buttons {
				parts = append(parts, "["+buttonLabel(btn, item)+"]")
			}
			controls = strings.Join(parts, " ")
			start := width - runewidth.StringWidth(controls)
			if start < 0 {
				start = 0
			}
			x := start
			for _, btn := range l.tmpl.Buttons {
				label := "[" + buttonLabel(btn, item) + "]"
				w := runewidth.StringWidth(label)
				spans = append(spans, buttonSpan{Start: x, End: x + w, Action: btn.Action})
				x += w + 1
			}
		}

		titleWidth := width
		if controls != "" {
			titleWidth = width - runewidth.StringWidth(controls) - 1
		}
		if titleWidth < 1 {
			titleWidth = 1
		}

		line := Ellipsize(title, titleWidth)
		if controls != "" {
			pad := width - runewidth.StringWidth(line) - runewidth.StringWidth(controls)
			if pad < 1 {
				pad = 1
			}
			line = ListItemStyle.Render(line) + strings.Repeat(" ", pad) + ListButtonStyle.Render(controls)
		} else {
			line = ListItemStyle.Render(line)
		}
		out = append(out, line)
		l.lines = append(l.lines, listLine{ItemIndex: i, Buttons: spans})

		if l.tmpl.SubtitleKey != "" {
			if sub := item.Str(l.tmpl.SubtitleKey); sub != "" {
				out = append(out, ListSubtitleStyle.Render("  "+Ellipsize(sub, width-2)))
				l.lines = append(l.lines, listLine{ItemIndex: i})
			}
		}
	}
	return strings.Join(out, "\n")
}

// Lines returns how many lines the last View produced.
func (l *ItemList) Lines() int {
	return len(l.lines)
}

// Click resolves a click at list-local coordinates. A control click emits
// exactly one ListAction; a row click outside any control emits a
// ListSelect.
func (l *ItemList) Click(x, y int) tea.Cmd {
	if y < 0 || y >= len(l.lines) {
		return nil
	}
	line := l.lines[y]
	if line.ItemIndex < 0 || line.ItemIndex >= len(l.items) {
		return nil
	}
	item := l.items[line.ItemIndex]

	for _, span := range line.Buttons {
		if x >= span.Start && x < span.End {
			ev := ListAction{
				WinID:     l.winID,
				ElementID: l.elemID,
				Action:    span.Action,
				Item:      item,
				Index:     line.ItemIndex,
			}
			return func() tea.Msg { return BusEventMsg{Event: ev} }
		}
	}

	ev := ListSelect{
		WinID:     l.winID,
		ElementID: l.elemID,
		Item:      item,
		Index:     line.ItemIndex,
	}
	return func() tea.Msg { return BusEventMsg{Event: ev} }
}

// BusEventMsg carries a bus event through the Bubble Tea loop so dispatch
// happens on the main goroutine.
type BusEventMsg struct {
	Event Event
}

// Ellipsize truncates a string to a display width, breaking on grapheme
// cluster boundaries so multi-rune glyphs survive intact.
func Ellipsize(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var b strings.Builder
	w := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if w+cw > maxWidth-1 {
			break
		}
		b.WriteString(cluster)
		w += cw
	}
	return b.String() + "…"
}
