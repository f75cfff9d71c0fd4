package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width     int
	bindings  []KeyBinding
	modalOpen bool // A modal captures input; show its bindings instead
	dragging  bool // A pointer session is active
	streaming bool // The chat window is receiving a response
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "cycle focus"},
			{Key: "ctrl+p", Desc: "persona"},
			{Key: "ctrl+s", Desc: "settings"},
			{Key: "ctrl+e", Desc: "prompts"},
			{Key: "drag titlebar", Desc: "move"},
			{Key: "drag ═", Desc: "resize"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(modalOpen, dragging, streaming bool) {
	f.modalOpen = modalOpen
	f.dragging = dragging
	f.streaming = streaming
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer
func (f *Footer) View() string {
	var bindings []KeyBinding

	switch {
	case f.dragging:
		bindings = []KeyBinding{
			{Key: "release", Desc: "drop"},
		}
	case f.modalOpen:
		bindings = []KeyBinding{
			{Key: "esc", Desc: "close"},
			{Key: "enter", Desc: "confirm"},
			{Key: "drag titlebar", Desc: "move"},
		}
	case f.streaming:
		bindings = []KeyBinding{
			{Key: "esc", Desc: "stop"},
			{Key: "tab", Desc: "cycle focus"},
		}
	default:
		bindings = f.bindings
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
