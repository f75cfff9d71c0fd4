package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the session history list.
const (
	WinSessions        = "win_sessions"
	SessionListElement = "session_list"
)

// Sessions drives the chat-history window. Opening a stored session loads
// its transcript into the chat window.
type Sessions struct {
	deps *Deps
	all  *Panels
}

// NewSessions builds the controller and registers its bus subscriptions.
func NewSessions(deps *Deps, all *Panels) *Sessions {
	s := &Sessions{deps: deps, all: all}
	deps.Mgr.Bus().Subscribe(ui.Filter{WinID: WinSessions, ElementID: SessionListElement}, s.onListEvent)
	return s
}

// Open spawns the sessions window.
func (s *Sessions) Open() error {
	_, err := s.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinSessions,
		Title:  "Sessions",
		Col:    ui.ColLeft,
		Unique: true,
		Elements: []ui.ElementSpec{
			{
				Type: ui.ElementItemList,
				ID:   SessionListElement,
				Template: ui.ItemTemplate{
					TitleKey:    "title",
					SubtitleKey: "subtitle",
					Buttons: []ui.ItemButton{
						{Label: "Open", Action: "open"},
					},
				},
			},
		},
	})
	return err
}

// Refresh fetches the stored session list.
func (s *Sessions) Refresh() tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		sessions, err := client.Sessions(ctx)
		return SessionsMsg{Sessions: sessions, Err: err}
	}
}

// OnSessions renders the session list.
func (s *Sessions) OnSessions(msg SessionsMsg) {
	if msg.Err != nil {
		logger.Warn("Sessions: refresh failed: %v", msg.Err)
		return
	}
	list, ok := s.deps.Mgr.List(WinSessions, SessionListElement)
	if !ok {
		return
	}
	items := make([]ui.Item, 0, len(msg.Sessions))
	for _, sess := range msg.Sessions {
		title := sess.Title
		if title == "" {
			title = sess.SessionID
		}
		items = append(items, ui.Item{
			"id":       sess.SessionID,
			"title":    title,
			"subtitle": sess.Updated,
		})
	}
	list.Render(items)
}

// onListEvent loads a session transcript on open or row selection.
func (s *Sessions) onListEvent(ev ui.Event) tea.Cmd {
	var id string
	switch e := ev.(type) {
	case ui.ListAction:
		if e.Action != "open" {
			return nil
		}
		id = e.Item.Str("id")
	case ui.ListSelect:
		id = e.Item.Str("id")
	default:
		return nil
	}
	if id == "" {
		return nil
	}
	return s.load(id)
}

func (s *Sessions) load(id string) tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		turns, err := client.SessionHistory(ctx, id)
		return SessionHistoryMsg{ID: id, Turns: turns, Err: err}
	}
}

// OnHistory loads a transcript into the chat window and switches the
// active session.
func (s *Sessions) OnHistory(msg SessionHistoryMsg) {
	if msg.Err != nil {
		logger.Warn("Sessions: history load failed: %v", msg.Err)
		return
	}
	s.all.Chat.LoadTranscript(msg.ID, msg.Turns)
}

// turnsToMessages flattens [user, assistant] pairs into chat messages.
func turnsToMessages(turns []sdk.Turn) []ui.ChatMessage {
	var msgs []ui.ChatMessage
	for _, t := range turns {
		if t.User != "" {
			msgs = append(msgs, ui.ChatMessage{Role: "user", Text: t.User})
		}
		if t.Assistant != "" {
			msgs = append(msgs, ui.ChatMessage{Role: "assistant", Text: t.Assistant})
		}
	}
	return msgs
}
