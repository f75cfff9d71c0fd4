package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docdesk/docdesk/internal/keys"
)

// Chat element and action names used on the bus.
const (
	ChatInputElement = "chat_input"
	ChatSendAction   = "chat_send"
)

// ChatMessage is one finished message in the transcript.
type ChatMessage struct {
	Role string // "user" or "assistant"
	Text string
}

// ChatContent renders the streaming chat window: a message log, a live
// streaming tail, and an input line. It implements Content for
// window_chat.
type ChatContent struct {
	winID string

	messages    []ChatMessage
	streaming   string
	isStreaming bool
	waiting     bool
	errText     string

	input   textinput.Model
	scroll  int // Lines scrolled up from the bottom
	focused bool
}

// NewChatContent is the registered renderer for window_chat.
func NewChatContent(m *Manager, cfg WindowConfig, winID string) (Content, error) {
	ti := textinput.New()
	ti.Placeholder = "Ask about your documents..."
	ti.CharLimit = 0
	return &ChatContent{winID: winID, input: ti}, nil
}

// SetMessages replaces the transcript (loading a stored session).
func (c *ChatContent) SetMessages(msgs []ChatMessage) {
	c.messages = msgs
	c.streaming = ""
	c.isStreaming = false
	c.scroll = 0
}

// PushUser appends a user message.
func (c *ChatContent) PushUser(text string) {
	c.messages = append(c.messages, ChatMessage{Role: "user", Text: text})
	c.scroll = 0
}

// StartAssistant begins a streaming assistant response.
func (c *ChatContent) StartAssistant() {
	c.streaming = ""
	c.isStreaming = true
	c.waiting = true
	c.errText = ""
	c.scroll = 0
}

// AppendStreaming appends a delta to the in-flight response.
func (c *ChatContent) AppendStreaming(delta string) {
	c.waiting = false
	c.streaming += delta
}

// FinishStreaming commits the in-flight response to the transcript.
func (c *ChatContent) FinishStreaming() {
	if c.streaming != "" {
		c.messages = append(c.messages, ChatMessage{Role: "assistant", Text: c.streaming})
	}
	c.streaming = ""
	c.isStreaming = false
	c.waiting = false
}

// FailStreaming aborts the in-flight response with an error line.
func (c *ChatContent) FailStreaming(msg string) {
	c.FinishStreaming()
	c.errText = msg
}

// Streaming reports whether a response is in flight.
func (c *ChatContent) Streaming() bool {
	return c.isStreaming
}

// Input returns the current input line.
func (c *ChatContent) Input() string {
	return c.input.Value()
}

// ClearInput empties the input line.
func (c *ChatContent) ClearInput() {
	c.input.SetValue("")
}

// Focus implements Content.
func (c *ChatContent) Focus() {
	c.focused = true
	c.input.Focus()
}

// Blur implements Content.
func (c *ChatContent) Blur() {
	c.focused = false
	c.input.Blur()
}

// Scroll implements Scroller. Positive delta scrolls up into history.
func (c *ChatContent) Scroll(delta int) {
	c.scroll += delta
	if c.scroll < 0 {
		c.scroll = 0
	}
}

// Update routes keys to the input line. Enter submits via the bus.
func (c *ChatContent) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Enter:
			if strings.TrimSpace(c.input.Value()) == "" || c.isStreaming {
				return nil
			}
			ev := Action{WinID: c.winID, ElementID: ChatInputElement, Action: ChatSendAction}
			return func() tea.Msg { return BusEventMsg{Event: ev} }
		case keys.PgUp:
			c.Scroll(3)
			return nil
		case keys.PgDown:
			c.Scroll(-3)
			return nil
		}
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// transcript renders all finished and in-flight messages at a width.
func (c *ChatContent) transcript(width int) string {
	var parts []string
	for _, m := range c.messages {
		if m.Role == "user" {
			parts = append(parts, ChatUserStyle.Render("You")+"\n"+ChatMessageStyle.Render(wrapLine(m.Text, width)))
		} else {
			parts = append(parts, ChatAssistantStyle.Render("Assistant")+"\n"+RenderMarkdown(m.Text, width))
		}
	}
	if c.isStreaming {
		tail := ChatAssistantStyle.Render("Assistant") + "\n"
		if c.waiting {
			tail += StatusLoadingStyle.Render("thinking...")
		} else {
			tail += RenderStreaming(c.streaming, width)
		}
		parts = append(parts, tail)
	}
	if c.errText != "" {
		parts = append(parts, StatusErrorStyle.Render(c.errText))
	}
	return strings.Join(parts, "\n\n")
}

// View renders the log above a separator and the input line.
func (c *ChatContent) View(width, height int) string {
	if height < 3 {
		height = 3
	}
	logHeight := height - 2

	lines := strings.Split(c.transcript(width), "\n")

	// Show the last logHeight lines, offset by the scroll position.
	end := len(lines) - c.scroll
	if end > len(lines) {
		end = len(lines)
	}
	if end < 0 {
		end = 0
	}
	start := end - logHeight
	if start < 0 {
		start = 0
	}
	visible := lines[start:end]

	for len(visible) < logHeight {
		visible = append(visible, "")
	}

	c.input.SetWidth(width - 2)
	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", max(width, 1)))
	return strings.Join(visible, "\n") + "\n" + sep + "\n" + c.input.View()
}

// Click focuses the input when its row is hit.
func (c *ChatContent) Click(x, y int) tea.Cmd {
	c.input.Focus()
	return nil
}
