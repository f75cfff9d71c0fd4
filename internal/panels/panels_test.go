package panels

import (
	"testing"

	"github.com/docdesk/docdesk/internal/config"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// fixture builds the full controller wiring against a throwaway config and
// a client pointing nowhere. Tests only exercise paths that do not hit the
// network; commands that would are returned unexecuted.
func fixture(t *testing.T) (*Panels, *Deps) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}

	mgr := ui.NewManager(cfg)
	mgr.Register(ui.TypeChat, ui.NewChatContent)
	mgr.Register(ui.TypeSegmentView, ui.NewSegmentViewContent)

	deps := &Deps{
		Mgr:    mgr,
		Client: sdk.New("http://127.0.0.1:1", ""),
		Cfg:    cfg,
	}
	return New(deps), deps
}

func TestDocs_OnDocumentsRendersItems(t *testing.T) {
	p, deps := fixture(t)
	if err := p.Docs.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	p.Docs.OnDocuments(DocumentsMsg{Docs: []sdk.Document{
		{ID: "1", Title: "Guide", Source: "guide.md", Segments: 3},
		{ID: "2", Title: "Notes", Source: "notes.md", Segments: 1},
	}})

	list, ok := deps.Mgr.List(WinDocs, DocListElement)
	if !ok {
		t.Fatal("Document list should be registered")
	}
	items := list.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Str("title") != "Guide" || items[0].Str("subtitle") != "3 segments" {
		t.Errorf("Unexpected first item: %v", items[0])
	}
	if !items[0].Bool("active") {
		t.Error("Documents should start active")
	}
}

func TestDocs_ToggleFlipsConfigWithoutServerCall(t *testing.T) {
	p, deps := fixture(t)
	p.Docs.Open()
	p.Docs.OnDocuments(DocumentsMsg{Docs: []sdk.Document{
		{ID: "1", Title: "Guide", Source: "guide.md", Segments: 3},
	}})

	cmd := deps.Mgr.Bus().Publish(ui.ListAction{
		WinID:     WinDocs,
		ElementID: DocListElement,
		Action:    "toggle_active",
		Item:      ui.Item{"source": "guide.md"},
	})
	if cmd != nil {
		t.Error("Toggling is local; no command should be returned")
	}

	if deps.Cfg.IsDocActive("guide.md") {
		t.Error("Document should be inactive after the toggle")
	}

	list, _ := deps.Mgr.List(WinDocs, DocListElement)
	if list.Items()[0].Bool("active") {
		t.Error("List should re-render with the new state")
	}

	// Toggling back reactivates.
	deps.Mgr.Bus().Publish(ui.ListAction{
		WinID:     WinDocs,
		ElementID: DocListElement,
		Action:    "toggle_active",
		Item:      ui.Item{"source": "guide.md"},
	})
	if !deps.Cfg.IsDocActive("guide.md") {
		t.Error("Document should be active again")
	}
}

func TestDocs_SelectScopesSegments(t *testing.T) {
	p, deps := fixture(t)
	p.Docs.Open()
	p.Segments.Open()

	cmd := deps.Mgr.Bus().Publish(ui.ListSelect{
		WinID:     WinDocs,
		ElementID: DocListElement,
		Item:      ui.Item{"source": "guide.md"},
	})
	if cmd == nil {
		t.Fatal("Selecting a document should return a refresh command")
	}
	if p.Segments.currentSource != "guide.md" {
		t.Errorf("Segments scope = %q, want guide.md", p.Segments.currentSource)
	}
}

func TestSegments_StaleResponseIgnored(t *testing.T) {
	p, deps := fixture(t)
	p.Segments.Open()
	p.Segments.SetSource("current.md")

	// A response from an earlier, different scope must not render.
	p.Segments.OnSegments(SegmentsMsg{Source: "old.md", Segs: []sdk.Segment{
		{ID: "s1", Source: "old.md", SegmentIndex: 0},
	}})

	list, _ := deps.Mgr.List(WinSegments, SegmentListElement)
	if list.Len() != 0 {
		t.Error("Stale segment response should be dropped")
	}

	p.Segments.OnSegments(SegmentsMsg{Source: "current.md", Segs: []sdk.Segment{
		{ID: "s2", Source: "current.md", SegmentIndex: 4},
	}})
	if list.Len() != 1 {
		t.Fatal("Matching-scope response should render")
	}
	if list.Items()[0].Str("title") != "current.md #4" {
		t.Errorf("Unexpected title: %q", list.Items()[0].Str("title"))
	}
}

func TestSessions_FallbackTitle(t *testing.T) {
	p, deps := fixture(t)
	p.Sessions.Open()

	p.Sessions.OnSessions(SessionsMsg{Sessions: []sdk.SessionInfo{
		{SessionID: "abc-123", Title: "", Updated: "today"},
		{SessionID: "def-456", Title: "Named", Updated: "yesterday"},
	}})

	list, _ := deps.Mgr.List(WinSessions, SessionListElement)
	items := list.Items()
	if items[0].Str("title") != "abc-123" {
		t.Errorf("Untitled session should fall back to its id, got %q", items[0].Str("title"))
	}
	if items[1].Str("title") != "Named" {
		t.Errorf("Titled session should keep its title, got %q", items[1].Str("title"))
	}
}

func TestTurnsToMessages(t *testing.T) {
	msgs := turnsToMessages([]sdk.Turn{
		{User: "hi", Assistant: "hello"},
		{User: "pending"},
	})

	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Text != "hi" {
		t.Errorf("Unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Text != "hello" {
		t.Errorf("Unexpected second message: %+v", msgs[1])
	}
	if msgs[2].Role != "user" || msgs[2].Text != "pending" {
		t.Errorf("Unexpected third message: %+v", msgs[2])
	}
}

func TestChat_StreamLifecycle(t *testing.T) {
	p, deps := fixture(t)
	if err := p.Chat.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	p.Chat.OnSessionReady(SessionReadyMsg{ID: "sess-1"})
	if p.Chat.SessionID() != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", p.Chat.SessionID())
	}

	ch := make(chan sdk.Chunk, 4)
	cmd := p.Chat.OnStarted(ChatStartedMsg{Ch: ch})
	if cmd == nil {
		t.Fatal("OnStarted should arm the listener")
	}
	if !p.Chat.Streaming() {
		t.Error("Chat should report streaming")
	}

	win, _ := deps.Mgr.Window(WinChat)
	content := win.Content.(*ui.ChatContent)
	content.StartAssistant()

	if next := p.Chat.OnChunk(ChatChunkMsg{Chunk: sdk.Chunk{Delta: "Hel"}}); next == nil {
		t.Error("A delta chunk should re-arm the listener")
	}
	p.Chat.OnChunk(ChatChunkMsg{Chunk: sdk.Chunk{Delta: "lo"}})

	// Keep the window focused so completion does not fire a notification.
	deps.Mgr.FocusWindow(WinChat)
	p.Chat.OnChunk(ChatChunkMsg{Chunk: sdk.Chunk{Done: true}})

	if p.Chat.Streaming() {
		t.Error("Stream should be finished")
	}
}

func TestChat_ErrorChunkStopsStream(t *testing.T) {
	p, deps := fixture(t)
	p.Chat.Open()

	ch := make(chan sdk.Chunk, 1)
	p.Chat.OnStarted(ChatStartedMsg{Ch: ch})

	win, _ := deps.Mgr.Window(WinChat)
	win.Content.(*ui.ChatContent).StartAssistant()

	p.Chat.OnChunk(ChatChunkMsg{Chunk: sdk.Chunk{Err: errFake}})

	if p.Chat.Streaming() {
		t.Error("An error chunk should end the stream")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "boom" }
