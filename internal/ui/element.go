package ui

import (
	"fmt"
	"strings"
)

// Element kinds understood by the generic renderer.
const (
	ElementText        = "text"
	ElementTextField   = "text_field"
	ElementNumberField = "number_field"
	ElementTextArea    = "text_area"
	ElementButton      = "button"
	ElementFileUpload  = "file_upload"
	ElementItemList    = "item_list"
	ElementNote        = "note"
	ElementSelect      = "select"
)

// Toggle makes a button two-state: its label is resolved per item from a
// boolean property at render time. The action fired is the same either way;
// subscribers read the property to decide direction.
type Toggle struct {
	Prop string // Item property holding the state
	On   string // Label when the property is true
	Off  string // Label when the property is false
}

// ItemButton is one control rendered on each list item.
type ItemButton struct {
	Label  string
	Action string
	Toggle *Toggle
}

// ItemTemplate controls how an item_list renders its rows.
type ItemTemplate struct {
	TitleKey    string // Item property shown as the row title
	SubtitleKey string // Optional second line
	Buttons     []ItemButton
}

// ElementSpec declares one interior element of a window.
type ElementSpec struct {
	Type        string
	ID          string // Optional; derived when empty
	Label       string
	Text        string // Static content for text/note elements
	Action      string // Action name for buttons
	Placeholder string
	Value       string   // Initial value for fields
	Options     []string // Choices for select elements
	Template    ItemTemplate
	Lines       int // Height for text_area elements (0 = default)
}

// elementID resolves the stable id of an element: explicit id, else a slug
// of the label, else a positional fallback.
func elementID(spec ElementSpec, pos int) string {
	if spec.ID != "" {
		return spec.ID
	}
	if spec.Label != "" {
		return slug(spec.Label)
	}
	return fmt.Sprintf("el_%d", pos)
}

// slug lowercases and replaces runs of non-alphanumerics with underscores.
func slug(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}
