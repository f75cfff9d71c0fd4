// Package ui implements the window-manager layer of the docdesk TUI.
//
// # Overview
//
// The ui package renders a small desktop inside the terminal using the
// Bubble Tea framework and Lipgloss styling library. Windows stack
// vertically in two columns separated by a draggable splitter, with
// modal windows floating above everything else.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────┬───────────────────────────┤
//	│ ╭─ Documents ──── – × ─╮│╭─ Chat ───────────── – × ╮│
//	│ │                      ││ │                        ││
//	│ ╰──────────════────────╯││                         ││
//	│ ╭─ Sessions ───── – × ─╮││                         ││
//	│ │                      ││ ╰───────────════─────────╯│
//	│ ╰──────────────────────╯│                           │
//	├─────────────────────────┴───────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// ViewContext is the singleton that owns terminal dimensions and the
// column split ratio. All size calculations go through it so rendering
// and mouse hit-testing agree.
//
// # Windows
//
// Manager owns the two columns, the modal stack, and the live window
// registry. Windows are spawned from a WindowConfig whose Type selects a
// registered content Renderer; window_generic interprets declarative
// element specs (fields, buttons, item lists), while window_chat and
// window_segment_view have dedicated content types.
//
// ComputeLayout derives absolute cell regions for one frame. Mouse
// routing resolves pointer positions against that layout into chrome
// targets (titlebar, minimize, close, resize handle, splitter) or
// content-local coordinates.
//
// Pointer interactions run as sessions (Sessions holds at most one):
// dragging a titlebar moves a window between columns with a drop marker,
// dragging the bottom border resizes, dragging the splitter rebalances
// the columns. Final geometry is persisted through the PrefStore.
//
// # Events
//
// Interactive elements publish typed events on the Bus. Controllers
// subscribe with a Filter keyed by window and element id; empty filter
// fields act as wildcards. Events travel through the Bubble Tea loop as
// BusEventMsg values so handlers always run on the main goroutine.
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss and regenerated
// when the theme changes. The default palette uses:
//   - ColorPrimary (#7C3AED): Purple, used for highlights and focused windows
//   - ColorSecondary (#06B6D4): Cyan, used for buttons and the drop marker
//   - ColorBg (#1F2937): Dark background
//   - ColorText (#F9FAFB): Light text
//   - ColorTextMuted (#B0B8C4): Muted text for secondary content
package ui
