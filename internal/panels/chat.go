package panels

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/notification"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// WinChat is the chat window id.
const WinChat = "win_chat"

// Chat drives the streaming chat window.
type Chat struct {
	deps *Deps

	sessionID string
	stream    <-chan sdk.Chunk
	cancel    context.CancelFunc
}

// NewChat builds the controller and registers its bus subscriptions.
func NewChat(deps *Deps) *Chat {
	c := &Chat{deps: deps}
	deps.Mgr.Bus().Subscribe(ui.Filter{WinID: WinChat, ElementID: ui.ChatInputElement}, c.onInputEvent)
	return c
}

// Open spawns the chat window.
func (c *Chat) Open() error {
	_, err := c.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinChat,
		Type:   ui.TypeChat,
		Title:  "Chat",
		Col:    ui.ColRight,
		Unique: true,
		Height: 20,
	})
	return err
}

// SessionID returns the active chat session id.
func (c *Chat) SessionID() string {
	return c.sessionID
}

// Streaming reports whether a response is in flight.
func (c *Chat) Streaming() bool {
	return c.stream != nil
}

func (c *Chat) content() *ui.ChatContent {
	win, ok := c.deps.Mgr.Window(WinChat)
	if !ok {
		return nil
	}
	content, _ := win.Content.(*ui.ChatContent)
	return content
}

// EnsureSession asks the backend for the active session id.
func (c *Chat) EnsureSession() tea.Cmd {
	client := c.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		id, err := client.EnsureSession(ctx)
		return SessionReadyMsg{ID: id, Err: err}
	}
}

// OnSessionReady stores the active session id.
func (c *Chat) OnSessionReady(msg SessionReadyMsg) {
	if msg.Err != nil {
		logger.Warn("Chat: session init failed: %v", msg.Err)
		return
	}
	c.sessionID = msg.ID
	logger.Info("Chat: session %s", msg.ID)
}

// LoadTranscript switches to a stored session and shows its transcript.
func (c *Chat) LoadTranscript(id string, turns []sdk.Turn) {
	c.sessionID = id
	if content := c.content(); content != nil {
		content.SetMessages(turnsToMessages(turns))
	}
	c.deps.Mgr.FocusWindow(WinChat)
}

// onInputEvent sends the input line as a chat turn.
func (c *Chat) onInputEvent(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != ui.ChatSendAction {
		return nil
	}
	content := c.content()
	if content == nil || c.stream != nil {
		return nil
	}
	text := strings.TrimSpace(content.Input())
	if text == "" {
		return nil
	}
	content.ClearInput()
	content.PushUser(text)
	content.StartAssistant()

	req := sdk.ChatRequest{
		Message:   text,
		SessionID: c.sessionID,
		Persona:   c.deps.Cfg.GetPersona(),
		Inactive:  c.deps.Cfg.InactiveList(),
	}
	client := c.deps.Client

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	return func() tea.Msg {
		ch, err := client.StreamChat(ctx, req)
		return ChatStartedMsg{Ch: ch, Err: err}
	}
}

// OnStarted stores the stream channel and begins the listen loop.
func (c *Chat) OnStarted(msg ChatStartedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Chat: stream open failed: %v", msg.Err)
		if content := c.content(); content != nil {
			content.FailStreaming("request failed: " + msg.Err.Error())
		}
		c.cleanup()
		return nil
	}
	c.stream = msg.Ch
	return c.listen()
}

// listen returns a command that delivers the next chunk.
func (c *Chat) listen() tea.Cmd {
	ch := c.stream
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return ChatChunkMsg{Chunk: sdk.Chunk{Done: true}}
		}
		return ChatChunkMsg{Chunk: chunk}
	}
}

// OnChunk applies one streamed chunk and re-arms the listener until the
// terminal chunk arrives.
func (c *Chat) OnChunk(msg ChatChunkMsg) tea.Cmd {
	content := c.content()
	if content == nil {
		c.cleanup()
		return nil
	}

	chunk := msg.Chunk
	switch {
	case chunk.Err != nil:
		content.FailStreaming(chunk.Err.Error())
		c.cleanup()
		return nil
	case chunk.Done:
		content.FinishStreaming()
		c.cleanup()
		c.notifyIfUnfocused()
		// The transcript on the server changed; refresh the history list.
		return func() tea.Msg {
			client := c.deps.Client
			ctx, cancel := reqCtx()
			defer cancel()
			sessions, err := client.Sessions(ctx)
			return SessionsMsg{Sessions: sessions, Err: err}
		}
	default:
		content.AppendStreaming(chunk.Delta)
		return c.listen()
	}
}

// Stop aborts an in-flight response.
func (c *Chat) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Chat) cleanup() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stream = nil
}

// notifyIfUnfocused sends a desktop notification when the response
// finished while another window had focus.
func (c *Chat) notifyIfUnfocused() {
	win, ok := c.deps.Mgr.Window(WinChat)
	if !ok || win.Focused() {
		return
	}
	if err := notification.ResponseReady(); err != nil {
		logger.Debug("Chat: notification failed: %v", err)
	}
}
