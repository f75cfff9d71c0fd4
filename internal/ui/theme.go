// Theme management. Themes define the color palette used throughout the UI,
// allowing users to customize the visual appearance of docdesk.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (buttons, assistant text)
	Secondary string

	// Background colors
	Bg string

	// Text colors
	Text        string
	TextMuted   string
	TextInverse string

	// Semantic colors
	User      string
	Assistant string
	Warning   string
	Error     string
	Success   string

	// Border colors
	Border      string
	BorderFocus string // defaults to Primary if empty
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		User:        "#A78BFA",
		Assistant:   "#22D3EE",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#374151",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		User:        "#A3BE8C",
		Assistant:   "#88C0D0",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		User:        "#FF79C6",
		Assistant:   "#8BE9FD",
		Warning:     "#F1FA8C",
		Error:       "#FF5555",
		Success:     "#50FA7B",
		Border:      "#44475A",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6D28D9",
		Secondary:   "#0E7490",
		Bg:          "#FFFFFF",
		Text:        "#111827",
		TextMuted:   "#6B7280",
		TextInverse: "#F9FAFB",
		User:        "#7C3AED",
		Assistant:   "#0E7490",
		Warning:     "#B45309",
		Error:       "#B91C1C",
		Success:     "#047857",
		Border:      "#D1D5DB",
	},
}

// ThemeNames returns the theme identifiers in cycling order.
func ThemeNames() []ThemeName {
	return []ThemeName{ThemeDarkPurple, ThemeNord, ThemeDracula, ThemeLight}
}

var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the active theme palette.
func CurrentTheme() Theme {
	return currentTheme
}

// ApplyTheme switches the active palette and regenerates all style vars.
// Unknown names fall back to the default theme.
func ApplyTheme(name ThemeName) {
	t, ok := BuiltinThemes[name]
	if !ok {
		t = BuiltinThemes[DefaultTheme]
	}
	currentTheme = t
	regenerateStyles(t)
}

// regenerateStyles rebuilds the package style vars from a theme.
func regenerateStyles(t Theme) {
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

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

	SplitterStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	SplitterActiveStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

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

	FieldLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorSecondary).
		Padding(0, 1)

	NoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

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

	ModalBackdropStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
}
