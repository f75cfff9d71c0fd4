package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#A78BFA") // Light purple for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Window chrome styles
var (
	WindowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	WindowFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	WindowDraggingStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary)

	WindowTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	WindowControlStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ResizeHandleStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Splitter styles
var (
	SplitterStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	SplitterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)
)

// List styles
var (
	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ListSubtitleStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ListButtonStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ListInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Strikethrough(true)

	DropMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// Form styles
var (
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorTextInverse).
			Background(ColorSecondary).
			Padding(0, 1)

	NoteStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Modal styles
var (
	ModalBackdropStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)
