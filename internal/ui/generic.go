package ui

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/keys"
)

// control is one instantiated element inside a generic window.
type control struct {
	spec ElementSpec
	id   string

	input  textinput.Model
	area   textarea.Model
	list   *ItemList
	selIdx int

	hasInput bool
	hasArea  bool
}

// rowRef maps one rendered content row back to its control.
type rowRef struct {
	ctrl   *control
	localY int // Row within the control's own view
}

// GenericContent interprets a window's element specs into interactive
// rows. It is the default content renderer for window_generic.
type GenericContent struct {
	m     *Manager
	winID string

	controls []*control
	focusIdx int
	focused  bool

	rows  []rowRef
	width int
}

// NewGenericContent builds generic content from a window config. It
// registers item_list elements with the manager as it goes.
func NewGenericContent(m *Manager, cfg WindowConfig, winID string) (Content, error) {
	g := &GenericContent{
		m:        m,
		winID:    winID,
		focusIdx: -1,
	}

	for pos, spec := range cfg.Elements {
		c := &control{spec: spec, id: elementID(spec, pos)}
		switch spec.Type {
		case ElementTextField, ElementNumberField, ElementFileUpload:
			ti := textinput.New()
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = InputCharLimit
			ti.SetValue(spec.Value)
			c.input = ti
			c.hasInput = true
		case ElementTextArea:
			ta := textarea.New()
			ta.Placeholder = spec.Placeholder
			ta.ShowLineNumbers = false
			ta.Prompt = ""
			ta.CharLimit = 0
			lines := spec.Lines
			if lines <= 0 {
				lines = TextareaHeight
			}
			ta.SetHeight(lines)
			ta.SetValue(spec.Value)
			c.area = ta
			c.hasArea = true
		case ElementItemList:
			c.list = m.RegisterList(winID, c.id, spec.Template)
		}
		g.controls = append(g.controls, c)
	}
	return g, nil
}

// control lookup by element id.
func (g *GenericContent) find(id string) *control {
	for _, c := range g.controls {
		if c.id == id {
			return c
		}
	}
	return nil
}

// Value returns the current value of a field, select, or text element.
func (g *GenericContent) Value(id string) string {
	c := g.find(id)
	if c == nil {
		return ""
	}
	switch {
	case c.hasInput:
		return c.input.Value()
	case c.hasArea:
		return c.area.Value()
	case c.spec.Type == ElementSelect:
		if len(c.spec.Options) == 0 {
			return ""
		}
		return c.spec.Options[c.selIdx]
	default:
		return c.spec.Value
	}
}

// IntValue returns a number field's value, or the fallback when the field
// is empty or malformed.
func (g *GenericContent) IntValue(id string, fallback int) int {
	v := strings.TrimSpace(g.Value(id))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// SetValue replaces a field's value.
func (g *GenericContent) SetValue(id, value string) {
	c := g.find(id)
	if c == nil {
		return
	}
	switch {
	case c.hasInput:
		c.input.SetValue(value)
	case c.hasArea:
		c.area.SetValue(value)
	case c.spec.Type == ElementSelect:
		for i, opt := range c.spec.Options {
			if opt == value {
				c.selIdx = i
				return
			}
		}
	}
}

// SetOptions replaces a select element's choices.
func (g *GenericContent) SetOptions(id string, options []string) {
	if c := g.find(id); c != nil {
		c.spec.Options = options
		if c.selIdx >= len(options) {
			c.selIdx = 0
		}
	}
}

// HasFields reports whether any control accepts keyboard focus, meaning
// Tab should cycle fields instead of windows.
func (g *GenericContent) HasFields() bool {
	return len(g.focusable()) > 0
}

// focusable returns indexes of controls that accept keyboard focus.
func (g *GenericContent) focusable() []int {
	var out []int
	for i, c := range g.controls {
		if c.hasInput || c.hasArea {
			out = append(out, i)
		}
	}
	return out
}

func (g *GenericContent) focusControl(idx int) {
	for i, c := range g.controls {
		if c.hasInput {
			if i == idx {
				c.input.Focus()
			} else {
				c.input.Blur()
			}
		}
		if c.hasArea {
			if i == idx {
				c.area.Focus()
			} else {
				c.area.Blur()
			}
		}
	}
	g.focusIdx = idx
}

// cycleFocus moves keyboard focus to the next focusable field.
func (g *GenericContent) cycleFocus(backward bool) {
	f := g.focusable()
	if len(f) == 0 {
		return
	}
	pos := 0
	for i, idx := range f {
		if idx == g.focusIdx {
			if backward {
				pos = (i - 1 + len(f)) % len(f)
			} else {
				pos = (i + 1) % len(f)
			}
			break
		}
	}
	g.focusControl(f[pos])
}

// Focus implements Content.
func (g *GenericContent) Focus() {
	g.focused = true
	if g.focusIdx < 0 {
		if f := g.focusable(); len(f) > 0 {
			g.focusControl(f[0])
			return
		}
	}
	g.focusControl(g.focusIdx)
}

// Blur implements Content.
func (g *GenericContent) Blur() {
	g.focused = false
	for _, c := range g.controls {
		if c.hasInput {
			c.input.Blur()
		}
		if c.hasArea {
			c.area.Blur()
		}
	}
}

// Update routes key input to the focused field. Enter in a single-line
// field submits it as an action; Tab cycles fields.
func (g *GenericContent) Update(msg tea.Msg) tea.Cmd {
	if !g.focused || g.focusIdx < 0 || g.focusIdx >= len(g.controls) {
		return nil
	}
	c := g.controls[g.focusIdx]

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Tab:
			g.cycleFocus(false)
			return nil
		case keys.ShiftTab:
			g.cycleFocus(true)
			return nil
		case keys.Enter:
			if c.hasInput {
				ev := Action{WinID: g.winID, ElementID: c.id, Action: "submit"}
				return func() tea.Msg { return BusEventMsg{Event: ev} }
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case c.hasInput:
		c.input, cmd = c.input.Update(msg)
	case c.hasArea:
		c.area, cmd = c.area.Update(msg)
	}
	return cmd
}

// View renders the elements top to bottom and records the row map used by
// Click.
func (g *GenericContent) View(width, height int) string {
	g.width = width
	g.rows = g.rows[:0]

	var lines []string
	push := func(c *control, s string) {
		for i, line := range strings.Split(s, "\n") {
			lines = append(lines, line)
			g.rows = append(g.rows, rowRef{ctrl: c, localY: i})
		}
	}

	for _, c := range g.controls {
		switch c.spec.Type {
		case ElementText:
			push(c, ListItemStyle.Render(Ellipsize(c.spec.Text, width)))
		case ElementNote:
			push(c, NoteStyle.Render(Ellipsize(c.spec.Text, width)))
		case ElementButton:
			push(c, ButtonStyle.Render(c.spec.Label))
		case ElementTextField, ElementNumberField:
			if c.spec.Label != "" {
				push(c, FieldLabelStyle.Render(c.spec.Label))
			}
			c.input.SetWidth(width - 2)
			push(c, c.input.View())
		case ElementFileUpload:
			if c.spec.Label != "" {
				push(c, FieldLabelStyle.Render(c.spec.Label))
			}
			c.input.SetWidth(width - 2)
			push(c, c.input.View())
			push(c, ButtonStyle.Render("Upload"))
		case ElementTextArea:
			if c.spec.Label != "" {
				push(c, FieldLabelStyle.Render(c.spec.Label))
			}
			c.area.SetWidth(width)
			push(c, c.area.View())
		case ElementSelect:
			label := c.spec.Label
			var value string
			if len(c.spec.Options) > 0 {
				value = c.spec.Options[c.selIdx]
			}
			push(c, FieldLabelStyle.Render(label)+" "+ListButtonStyle.Render("‹ "+value+" ›"))
		case ElementItemList:
			push(c, c.list.View(width))
		}
	}

	return strings.Join(lines, "\n")
}

// rowStart returns the first rendered row index of a control, so list
// clicks can be translated to list-local rows.
func (g *GenericContent) rowStart(c *control) int {
	for i, ref := range g.rows {
		if ref.ctrl == c {
			return i
		}
	}
	return -1
}

// Click resolves a content-local click to a control interaction.
func (g *GenericContent) Click(x, y int) tea.Cmd {
	if y < 0 || y >= len(g.rows) {
		return nil
	}
	ref := g.rows[y]
	c := ref.ctrl
	if c == nil {
		return nil
	}

	switch c.spec.Type {
	case ElementButton:
		action := c.spec.Action
		if action == "" {
			action = c.id
		}
		ev := Action{WinID: g.winID, ElementID: c.id, Action: action}
		return func() tea.Msg { return BusEventMsg{Event: ev} }

	case ElementFileUpload:
		// Last row of the element is the upload button.
		if ref.localY == g.lastLocalRow(c) {
			action := c.spec.Action
			if action == "" {
				action = "upload"
			}
			ev := Action{WinID: g.winID, ElementID: c.id, Action: action}
			return func() tea.Msg { return BusEventMsg{Event: ev} }
		}
		g.focusControl(g.indexOf(c))
		return nil

	case ElementTextField, ElementNumberField, ElementTextArea:
		g.focusControl(g.indexOf(c))
		return nil

	case ElementSelect:
		if len(c.spec.Options) > 0 {
			c.selIdx = (c.selIdx + 1) % len(c.spec.Options)
			ev := Action{WinID: g.winID, ElementID: c.id, Action: "change"}
			return func() tea.Msg { return BusEventMsg{Event: ev} }
		}
		return nil

	case ElementItemList:
		start := g.rowStart(c)
		if start < 0 {
			return nil
		}
		return c.list.Click(x, y-start)
	}
	return nil
}

func (g *GenericContent) indexOf(c *control) int {
	for i, ctrl := range g.controls {
		if ctrl == c {
			return i
		}
	}
	return -1
}

// lastLocalRow returns the highest localY recorded for a control.
func (g *GenericContent) lastLocalRow(c *control) int {
	last := 0
	for _, ref := range g.rows {
		if ref.ctrl == c && ref.localY > last {
			last = ref.localY
		}
	}
	return last
}
