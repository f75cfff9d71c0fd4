package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Column is an ordered stack of windows.
type Column struct {
	Windows []*Window
}

// Append adds a window to the bottom of the column.
func (c *Column) Append(w *Window) {
	c.Windows = append(c.Windows, w)
}

// Remove deletes a window from the column, if present.
func (c *Column) Remove(w *Window) {
	for i, win := range c.Windows {
		if win == w {
			c.Windows = append(c.Windows[:i], c.Windows[i+1:]...)
			return
		}
	}
}

// InsertAt places a window at the given index, clamped to the column.
func (c *Column) InsertAt(w *Window, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(c.Windows) {
		index = len(c.Windows)
	}
	c.Windows = append(c.Windows, nil)
	copy(c.Windows[index+1:], c.Windows[index:])
	c.Windows[index] = w
}

// Index returns the position of a window, or -1.
func (c *Column) Index(w *Window) int {
	for i, win := range c.Windows {
		if win == w {
			return i
		}
	}
	return -1
}

// Contains reports whether the window is in this column.
func (c *Column) Contains(w *Window) bool {
	return c.Index(w) >= 0
}

// View renders the column's windows stacked vertically. While a drag
// session targets this column, a drop marker line is inserted at the
// insertion index and the dragged window is rendered in the drag style.
func (c *Column) View(width, height int, drag *DragSession) string {
	marker := -1
	if drag != nil && drag.TargetCol == c {
		marker = drag.MarkerIndex
	}

	// The marker index counts siblings with the dragged window excluded,
	// matching where the drop will land. Skip the dragged window when
	// lining the marker up so the preview and the drop agree.
	var parts []string
	pos := 0
	for _, w := range c.Windows {
		dragging := drag != nil && drag.Win == w
		if !dragging && marker == pos {
			parts = append(parts, dropMarkerLine(width))
		}
		parts = append(parts, w.View(width, dragging))
		if !dragging {
			pos++
		}
	}
	if marker == pos {
		parts = append(parts, dropMarkerLine(width))
	}

	body := strings.Join(parts, "\n")
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(body)
}

func dropMarkerLine(width int) string {
	if width < 1 {
		width = 1
	}
	return DropMarkerStyle.Render(strings.Repeat("▔", width))
}
