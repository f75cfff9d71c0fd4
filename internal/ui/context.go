package ui

import (
	"sync"

	"github.com/docdesk/docdesk/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	ContentHeight int
	LeftWidth     int
	RightWidth    int
	SplitterX     int

	// SplitRatio is the left column's share of the content width
	SplitRatio float64

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			SplitRatio: DefaultSplitRatio,
		}
		logger.ComponentLogger("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// Thread-safe; called from the main event loop.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.recalc()

	logger.ComponentLogger("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"leftWidth", v.LeftWidth,
		"rightWidth", v.RightWidth,
	)
}

// SetSplitRatio adjusts the column split and recomputes widths.
// Values outside the clamp bounds are clamped, never rejected.
func (v *ViewContext) SetSplitRatio(r float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if r < MinSplitRatio {
		r = MinSplitRatio
	}
	if r > MaxSplitRatio {
		r = MaxSplitRatio
	}
	v.SplitRatio = r
	v.recalc()
}

// recalc derives column widths from the terminal size and split ratio.
// Caller must hold the mutex.
func (v *ViewContext) recalc() {
	if v.SplitRatio == 0 {
		v.SplitRatio = DefaultSplitRatio
	}
	v.ContentHeight = v.TerminalHeight - HeaderHeight - FooterHeight

	usable := v.TerminalWidth - SplitterWidth
	v.LeftWidth = int(float64(usable) * v.SplitRatio)
	if v.LeftWidth < 1 {
		v.LeftWidth = 1
	}
	if v.LeftWidth > usable-1 {
		v.LeftWidth = usable - 1
	}
	v.RightWidth = usable - v.LeftWidth
	v.SplitterX = v.LeftWidth
}

// MaxWindowHeight returns the tallest a window may be resized to.
func (v *ViewContext) MaxWindowHeight() int {
	h := int(float64(v.ContentHeight) * MaxWindowRatio)
	if h < MinWindowHeight {
		h = MinWindowHeight
	}
	return h
}

// InnerWidth returns the usable width inside a window with borders
func (v *ViewContext) InnerWidth(winWidth int) int {
	return winWidth - BorderSize
}
