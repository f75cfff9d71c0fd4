package ui

// Layout constants for the desktop grid
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// MinTerminalWidth is the smallest width the layout math supports
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height the layout math supports
	MinTerminalHeight = 12

	// ChromeRows is the rows a window spends on chrome: top border,
	// titlebar, bottom border
	ChromeRows = 3

	// MinWindowHeight is the smallest total height of an expanded window
	MinWindowHeight = 5

	// MaxWindowRatio caps window height as a fraction of the content area
	MaxWindowRatio = 0.9

	// DefaultWindowHeight is used when a window has no explicit or
	// persisted height
	DefaultWindowHeight = 12

	// SplitterWidth is the width of the gutter between columns
	SplitterWidth = 1

	// DefaultSplitRatio is the left column's share of the content width
	DefaultSplitRatio = 0.5

	// MinSplitRatio and MaxSplitRatio clamp splitter dragging
	MinSplitRatio = 0.2
	MaxSplitRatio = 0.8

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// InputCharLimit is the character limit for form text inputs
	InputCharLimit = 256
)
