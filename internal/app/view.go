package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docdesk/docdesk/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	if m.welcome != nil {
		v.SetContent(m.welcome.View(m.width, m.height))
		return v
	}

	ctx := ui.GetViewContext()
	layout := m.mgr.ComputeLayout(ctx)

	m.footer.SetContext(layout.Modal != nil, m.sessions.Active(), m.panels.Chat.Streaming())
	header := m.header.View()
	footer := m.footer.View()

	// A modal hides the desktop behind a backdrop; the window is spliced
	// at the same region the hit testing uses.
	if layout.Modal != nil {
		v.SetContent(lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.modalOverlay(ctx, layout),
			footer,
		))
		return v
	}

	var drag *ui.DragSession
	if m.sessions.Kind() == ui.SessionDrag {
		drag = m.sessions.Drag
	}

	left := m.mgr.Left.View(ctx.LeftWidth, ctx.ContentHeight, drag)
	right := m.mgr.Right.View(ctx.RightWidth, ctx.ContentHeight, drag)
	splitter := m.splitterView(ctx)

	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, splitter, right)

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, columns, footer))
	return v
}

// splitterView draws the vertical divider between the columns.
func (m *Model) splitterView(ctx *ui.ViewContext) string {
	style := ui.SplitterStyle
	if m.sessions.Kind() == ui.SessionSplit {
		style = ui.SplitterActiveStyle
	}
	bar := strings.TrimSuffix(strings.Repeat("│\n", ctx.ContentHeight), "\n")
	return style.Render(bar)
}

// modalOverlay paints the content area as a backdrop with the modal window
// spliced in at its computed region.
func (m *Model) modalOverlay(ctx *ui.ViewContext, layout *ui.Layout) string {
	r := layout.Modal.Region
	modal := strings.Split(layout.Modal.Win.View(r.W, false), "\n")

	blank := ui.ModalBackdropStyle.Render(strings.Repeat(" ", ctx.TerminalWidth))
	padLeft := ui.ModalBackdropStyle.Render(strings.Repeat(" ", max(r.X, 0)))
	rightW := ctx.TerminalWidth - r.X - r.W
	padRight := ui.ModalBackdropStyle.Render(strings.Repeat(" ", max(rightW, 0)))

	// Content rows are 1-based after the header.
	top := ui.HeaderHeight
	lines := make([]string, 0, ctx.ContentHeight)
	for y := 0; y < ctx.ContentHeight; y++ {
		row := top + y
		if row >= r.Y && row < r.Y+r.H {
			lines = append(lines, padLeft+modal[row-r.Y]+padRight)
		} else {
			lines = append(lines, blank)
		}
	}
	return strings.Join(lines, "\n")
}
