package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Segment viewer element and action names used on the bus.
const (
	SegmentCopyElement = "seg_copy"
	SegmentCopyAction  = "copy"
)

// SegmentViewContent renders one retrieved segment: metadata lines, a copy
// control, and the markdown body. It implements Content for
// window_segment_view.
type SegmentViewContent struct {
	winID string

	meta   []string
	body   string
	scroll int
}

// NewSegmentViewContent is the registered renderer for window_segment_view.
func NewSegmentViewContent(m *Manager, cfg WindowConfig, winID string) (Content, error) {
	return &SegmentViewContent{winID: winID}, nil
}

// SetSegment fills the viewer from segment fields.
func (s *SegmentViewContent) SetSegment(source string, index, page int, score float64, body string) {
	s.meta = s.meta[:0]
	s.meta = append(s.meta, fmt.Sprintf("Source: %s", source))
	s.meta = append(s.meta, fmt.Sprintf("Segment: %d", index))
	if page > 0 {
		s.meta = append(s.meta, fmt.Sprintf("Page: %d", page))
	}
	if score > 0 {
		s.meta = append(s.meta, fmt.Sprintf("Score: %.3f", score))
	}
	s.body = body
	s.scroll = 0
}

// Body returns the raw segment text (what the copy control copies).
func (s *SegmentViewContent) Body() string {
	return s.body
}

// Focus implements Content.
func (s *SegmentViewContent) Focus() {}

// Blur implements Content.
func (s *SegmentViewContent) Blur() {}

// Scroll implements Scroller.
func (s *SegmentViewContent) Scroll(delta int) {
	s.scroll -= delta
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// Update implements Content; the viewer is mouse-driven.
func (s *SegmentViewContent) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// View renders metadata, the copy control, and the scrolled body.
func (s *SegmentViewContent) View(width, height int) string {
	var lines []string
	for _, m := range s.meta {
		lines = append(lines, ListSubtitleStyle.Render(Ellipsize(m, width)))
	}
	lines = append(lines, ButtonStyle.Render("Copy"))
	lines = append(lines, lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(width, 1))))

	body := strings.Split(RenderMarkdown(s.body, width), "\n")
	if s.scroll > len(body)-1 {
		s.scroll = len(body) - 1
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
	lines = append(lines, body[s.scroll:]...)

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// Click emits a copy action when the copy control row is hit.
func (s *SegmentViewContent) Click(x, y int) tea.Cmd {
	if y == len(s.meta) {
		ev := Action{WinID: s.winID, ElementID: SegmentCopyElement, Action: SegmentCopyAction}
		return func() tea.Msg { return BusEventMsg{Event: ev} }
	}
	return nil
}
