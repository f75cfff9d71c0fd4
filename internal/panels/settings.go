package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the settings editor.
const (
	WinSettings         = "modal_settings"
	LLMTargetElement    = "llm_target_address"
	LLMTokenElement     = "llm_api_token"
	SettingsSaveElement = "settings_save"
)

// Settings drives the modal editor for the backend's LLM settings.
type Settings struct {
	deps *Deps
}

// NewSettings builds the controller and registers its bus subscriptions.
func NewSettings(deps *Deps) *Settings {
	s := &Settings{deps: deps}
	deps.Mgr.Bus().Subscribe(ui.Filter{WinID: WinSettings, ElementID: SettingsSaveElement}, s.onSave)
	return s
}

// Open spawns the settings modal and fetches current values.
func (s *Settings) Open() (tea.Cmd, error) {
	_, err := s.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinSettings,
		Title:  "Settings",
		Modal:  true,
		Unique: true,
		Height: 12,
		Elements: []ui.ElementSpec{
			{Type: ui.ElementTextField, ID: LLMTargetElement, Label: "LLM target address", Placeholder: "https://api.example.com"},
			{Type: ui.ElementTextField, ID: LLMTokenElement, Label: "LLM API token", Placeholder: "sk-..."},
			{Type: ui.ElementButton, ID: SettingsSaveElement, Label: "Save", Action: "save"},
		},
	})
	if err != nil {
		return nil, err
	}

	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		settings, err := client.GetSettings(ctx)
		return SettingsMsg{Settings: settings, Err: err}
	}, nil
}

// OnSettings fills the form with fetched values.
func (s *Settings) OnSettings(msg SettingsMsg) {
	if msg.Err != nil {
		logger.Warn("Settings: fetch failed: %v", msg.Err)
		return
	}
	form := s.form()
	if form == nil || msg.Settings == nil {
		return
	}
	form.SetValue(LLMTargetElement, msg.Settings.LLMTargetAddress)
	form.SetValue(LLMTokenElement, msg.Settings.LLMAPIToken)
}

func (s *Settings) form() *ui.GenericContent {
	win, ok := s.deps.Mgr.Window(WinSettings)
	if !ok {
		return nil
	}
	form, _ := win.Content.(*ui.GenericContent)
	return form
}

// onSave writes the settings to the backend.
func (s *Settings) onSave(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != "save" {
		return nil
	}
	form := s.form()
	if form == nil {
		return nil
	}

	payload := sdk.Settings{
		LLMTargetAddress: form.Value(LLMTargetElement),
		LLMAPIToken:      form.Value(LLMTokenElement),
	}
	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := client.SaveSettings(ctx, payload)
		return SettingsSavedMsg{Err: err}
	}
}

// OnSaved closes the modal after a successful write.
func (s *Settings) OnSaved(msg SettingsSavedMsg) {
	if msg.Err != nil {
		logger.Warn("Settings: save failed: %v", msg.Err)
		return
	}
	s.deps.Mgr.Close(WinSettings)
}
