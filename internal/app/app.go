// Package app is the Bubble Tea model tying the window manager, the panel
// controllers, and the backend client together.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/config"
	"github.com/docdesk/docdesk/internal/keys"
	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/panels"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	client *sdk.Client
	mgr    *ui.Manager
	panels *panels.Panels

	sessions ui.Sessions
	header   *ui.Header
	footer   *ui.Footer
	welcome  *Welcome

	width  int
	height int
}

// New builds the application model.
func New(cfg *config.Config) *Model {
	ui.ApplyTheme(ui.ThemeName(cfg.GetTheme()))

	client := sdk.New(cfg.GetServerURL(), cfg.GetAPIToken())

	mgr := ui.NewManager(cfg)
	mgr.Register(ui.TypeChat, ui.NewChatContent)
	mgr.Register(ui.TypeSegmentView, ui.NewSegmentViewContent)

	m := &Model{
		cfg:    cfg,
		client: client,
		mgr:    mgr,
		header: ui.NewHeader(),
		footer: ui.NewFooter(),
	}
	m.panels = panels.New(&panels.Deps{Mgr: mgr, Client: client, Cfg: cfg})

	m.header.SetServerURL(cfg.GetServerURL())
	return m
}

// Init spawns the default desktop and kicks off the initial fetches.
func (m *Model) Init() tea.Cmd {
	if r := m.cfg.GetSplitRatio(); r > 0 {
		ui.GetViewContext().SetSplitRatio(r)
	}

	p := m.panels
	for _, open := range []func() error{
		p.Docs.Open,
		p.Sessions.Open,
		p.Chat.Open,
		p.Segments.Open,
		p.Search.Open,
	} {
		if err := open(); err != nil {
			// Renderer registration is wired in New; a failure here is a
			// programming error worth dying loudly for.
			logger.Error("App: default window spawn failed: %v", err)
			return tea.Quit
		}
	}
	m.mgr.FocusWindow(panels.WinChat)

	if !m.cfg.GetWelcomeShown() {
		m.welcome = NewWelcome(m.cfg)
	}

	return tea.Batch(
		p.Chat.EnsureSession(),
		p.Docs.Refresh(),
		p.Sessions.Refresh(),
		p.Segments.Refresh(),
	)
}

// Update is the root message router.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ui.GetViewContext().UpdateTerminalSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.footer.SetWidth(msg.Width)
		return m, nil

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if m.welcome != nil {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case ui.BusEventMsg:
		return m, m.mgr.Bus().Publish(msg.Event)
	}

	if cmd, handled := m.routePanelMsg(msg); handled {
		return m, cmd
	}
	return m, nil
}

// handleKey routes keyboard input.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keys.CtrlC {
		return m, tea.Quit
	}

	// The first-run welcome form captures everything else.
	if m.welcome != nil {
		cmd := m.welcome.Update(msg)
		if m.welcome.Done() {
			m.finishWelcome()
		}
		return m, cmd
	}

	switch msg.String() {
	case keys.Escape:
		if m.panels.Chat.Streaming() {
			m.panels.Chat.Stop()
			return m, nil
		}
		if top := m.mgr.TopModal(); top != nil {
			m.mgr.Close(top.ID)
			return m, nil
		}
		return m, nil

	case keys.Tab, keys.ShiftTab:
		// Form fields own Tab inside a modal.
		if m.mgr.TopModal() == nil {
			focused := m.mgr.FocusedWindow()
			if focused == nil || !contentWantsTab(focused) {
				m.mgr.CycleFocus()
				return m, nil
			}
		}

	case keys.CtrlP:
		if err := m.panels.Persona.Open(); err != nil {
			logger.Error("App: persona open failed: %v", err)
		}
		return m, nil

	case keys.CtrlS:
		cmd, err := m.panels.Settings.Open()
		if err != nil {
			logger.Error("App: settings open failed: %v", err)
			return m, nil
		}
		return m, cmd

	case keys.CtrlE:
		cmd, err := m.panels.Prompts.Open()
		if err != nil {
			logger.Error("App: prompts open failed: %v", err)
			return m, nil
		}
		return m, cmd
	}

	// Everything else goes to the active window's content; the top modal
	// wins over column windows.
	target := m.mgr.TopModal()
	if target == nil {
		target = m.mgr.FocusedWindow()
	}
	if target != nil && target.Content != nil {
		return m, target.Content.Update(msg)
	}
	return m, nil
}

// contentWantsTab reports whether the focused window's content uses Tab
// for internal field cycling.
func contentWantsTab(w *ui.Window) bool {
	g, ok := w.Content.(*ui.GenericContent)
	if !ok {
		return false
	}
	return g.HasFields()
}

// finishWelcome applies the first-run form and tears it down.
func (m *Model) finishWelcome() {
	url, token := m.welcome.Values()
	if url != "" {
		m.cfg.SetServerURL(url)
		m.client.SetBase(url)
	}
	if token != "" {
		m.cfg.SetAPIToken(token)
		m.client.SetToken(token)
	}
	m.cfg.MarkWelcomeShown()
	if err := m.cfg.Save(); err != nil {
		logger.Warn("App: config save failed: %v", err)
	}
	m.header.SetServerURL(m.cfg.GetServerURL())
	m.welcome = nil
}

// routePanelMsg forwards typed result messages to their controllers.
func (m *Model) routePanelMsg(msg tea.Msg) (tea.Cmd, bool) {
	p := m.panels
	switch msg := msg.(type) {
	case panels.DocumentsMsg:
		p.Docs.OnDocuments(msg)
		return nil, true
	case panels.UploadDoneMsg:
		return p.Docs.OnUploaded(msg), true
	case panels.DocRemovedMsg:
		return p.Docs.OnRemoved(msg), true
	case panels.SessionsMsg:
		p.Sessions.OnSessions(msg)
		return nil, true
	case panels.SessionHistoryMsg:
		p.Sessions.OnHistory(msg)
		m.header.SetSessionID(p.Chat.SessionID())
		return nil, true
	case panels.SessionReadyMsg:
		p.Chat.OnSessionReady(msg)
		m.header.SetSessionID(p.Chat.SessionID())
		return nil, true
	case panels.SegmentsMsg:
		p.Segments.OnSegments(msg)
		return nil, true
	case panels.SegmentDetailMsg:
		p.Segments.OnDetail(msg)
		return nil, true
	case panels.SegmentRemovedMsg:
		return p.Segments.OnRemoved(msg), true
	case panels.SearchResultsMsg:
		p.Search.OnResults(msg)
		return nil, true
	case panels.SettingsMsg:
		p.Settings.OnSettings(msg)
		return nil, true
	case panels.SettingsSavedMsg:
		p.Settings.OnSaved(msg)
		return nil, true
	case panels.PromptTemplatesMsg:
		p.Prompts.OnTemplates(msg)
		return nil, true
	case panels.PromptSavedMsg:
		return p.Prompts.OnSaved(msg), true
	case panels.ChatStartedMsg:
		return p.Chat.OnStarted(msg), true
	case panels.ChatChunkMsg:
		return p.Chat.OnChunk(msg), true
	}
	return nil, false
}
