package ui

// Region is an absolute cell rectangle.
type Region struct {
	X, Y, W, H int
}

// Contains reports whether the point falls inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowLayout pairs a window with its computed region.
type WindowLayout struct {
	Win    *Window
	Region Region
}

// TargetKind classifies what a pointer position resolves to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetTitlebar
	TargetMinimize
	TargetClose
	TargetResizer
	TargetSplitter
	TargetContent
	TargetColumn
)

// Target is the resolved logical element under a pointer position. All
// mouse routing walks the computed layout tree to produce one of these.
type Target struct {
	Kind   TargetKind
	Win    *Window
	Col    *Column
	LocalX int // Content-local coordinates for TargetContent
	LocalY int
}

// Layout is the computed geometry of one frame: absolute regions for every
// window, the splitter, and the modal overlay. It is pure data derived
// from the view context and column contents.
type Layout struct {
	Ctx         *ViewContext
	Left, Right []WindowLayout
	LeftRegion  Region
	RightRegion Region
	SplitterX   int
	Modal       *WindowLayout

	leftCol, rightCol *Column
}

// modalSize returns the rendered modal dimensions.
func modalSize(v *ViewContext, w *Window) (int, int) {
	width := 60
	if width > v.TerminalWidth-4 {
		width = v.TerminalWidth - 4
	}
	if width < 20 {
		width = 20
	}
	return width, w.Rows()
}

// ComputeLayout derives absolute regions for the current frame.
func (m *Manager) ComputeLayout(v *ViewContext) *Layout {
	l := &Layout{
		Ctx:       v,
		SplitterX: v.SplitterX,
		leftCol:   m.Left,
		rightCol:  m.Right,
	}

	contentTop := HeaderHeight
	l.LeftRegion = Region{X: 0, Y: contentTop, W: v.LeftWidth, H: v.ContentHeight}
	l.RightRegion = Region{X: v.LeftWidth + SplitterWidth, Y: contentTop, W: v.RightWidth, H: v.ContentHeight}

	l.Left = stackColumn(m.Left, l.LeftRegion)
	l.Right = stackColumn(m.Right, l.RightRegion)

	if top := m.TopModal(); top != nil {
		mw, mh := modalSize(v, top)
		x := (v.TerminalWidth-mw)/2 + top.OffsetX
		y := contentTop + (v.ContentHeight-mh)/2 + top.OffsetY
		x = clamp(x, 0, v.TerminalWidth-mw)
		y = clamp(y, contentTop, contentTop+v.ContentHeight-mh)
		l.Modal = &WindowLayout{Win: top, Region: Region{X: x, Y: y, W: mw, H: mh}}
	}

	return l
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stackColumn lays windows vertically inside the column region, clipping
// the last visible window at the column bottom.
func stackColumn(c *Column, region Region) []WindowLayout {
	var out []WindowLayout
	y := region.Y
	bottom := region.Y + region.H
	for _, w := range c.Windows {
		if y >= bottom {
			break
		}
		h := w.Rows()
		if y+h > bottom {
			h = bottom - y
		}
		out = append(out, WindowLayout{Win: w, Region: Region{X: region.X, Y: y, W: region.W, H: h}})
		y += w.Rows()
	}
	return out
}

// hitWindow resolves a point inside a window region to its chrome parts.
func hitWindow(wl WindowLayout, x, y int) Target {
	r := wl.Region
	w := wl.Win

	// Titlebar is the first interior row; controls sit at its right edge.
	if y == r.Y+1 {
		switch x {
		case r.X + r.W - 5:
			return Target{Kind: TargetMinimize, Win: w}
		case r.X + r.W - 3:
			return Target{Kind: TargetClose, Win: w}
		}
		return Target{Kind: TargetTitlebar, Win: w}
	}

	// Bottom border doubles as the resize handle.
	if y == r.Y+r.H-1 && w.Resizable && !w.Collapsed {
		return Target{Kind: TargetResizer, Win: w}
	}

	// Interior content, excluding the side borders.
	if y >= r.Y+2 && y < r.Y+r.H-1 && x > r.X && x < r.X+r.W-1 {
		return Target{Kind: TargetContent, Win: w, LocalX: x - r.X - 1, LocalY: y - r.Y - 2}
	}

	return Target{Kind: TargetNone, Win: w}
}

// Hit resolves a pointer position to its logical target. While a modal is
// open only the modal is interactive; clicks on the backdrop resolve to
// nothing.
func (l *Layout) Hit(x, y int) Target {
	if l.Modal != nil {
		if l.Modal.Region.Contains(x, y) {
			return hitWindow(*l.Modal, x, y)
		}
		return Target{Kind: TargetNone}
	}

	if x == l.SplitterX && y >= HeaderHeight && y < HeaderHeight+l.Ctx.ContentHeight {
		return Target{Kind: TargetSplitter}
	}

	for _, wl := range l.Left {
		if wl.Region.Contains(x, y) {
			return hitWindow(wl, x, y)
		}
	}
	for _, wl := range l.Right {
		if wl.Region.Contains(x, y) {
			return hitWindow(wl, x, y)
		}
	}

	if l.LeftRegion.Contains(x, y) {
		return Target{Kind: TargetColumn, Col: l.leftCol}
	}
	if l.RightRegion.Contains(x, y) {
		return Target{Kind: TargetColumn, Col: l.rightCol}
	}
	return Target{Kind: TargetNone}
}

// ColumnAt resolves a pointer position to a drop-target column, or nil
// when the pointer is outside the content area.
func (l *Layout) ColumnAt(x, y int) *Column {
	if y < HeaderHeight || y >= HeaderHeight+l.Ctx.ContentHeight {
		return nil
	}
	if x < 0 || x >= l.Ctx.TerminalWidth {
		return nil
	}
	if x <= l.SplitterX {
		return l.leftCol
	}
	return l.rightCol
}

// InsertionIndex computes where a dragged window would land in a column:
// before the first sibling whose vertical midpoint lies below the pointer,
// else after the last. The dragged window itself is skipped.
func (l *Layout) InsertionIndex(col *Column, pointerY int, dragged *Window) int {
	var stack []WindowLayout
	if col == l.leftCol {
		stack = l.Left
	} else {
		stack = l.Right
	}

	index := 0
	for _, wl := range stack {
		if wl.Win == dragged {
			continue
		}
		mid := wl.Region.Y + wl.Region.H/2
		if pointerY < mid {
			return index
		}
		index++
	}
	return index
}

// regionFor returns the computed region of a window, if visible.
func (l *Layout) regionFor(w *Window) (Region, bool) {
	if l.Modal != nil && l.Modal.Win == w {
		return l.Modal.Region, true
	}
	for _, wl := range l.Left {
		if wl.Win == w {
			return wl.Region, true
		}
	}
	for _, wl := range l.Right {
		if wl.Win == w {
			return wl.Region, true
		}
	}
	return Region{}, false
}
