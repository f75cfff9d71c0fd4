package panels

import (
	"encoding/json"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the prompt template editor.
const (
	WinPrompts        = "win_prompt_editor"
	TmplSelectElement = "tmpl_select"
	TmplTextElement   = "tmpl_text"
	TmplSaveElement   = "tmpl_save"
	TmplStatusElement = "tmpl_status"
)

// Prompts drives the prompt-template editor window: pick a template,
// edit its JSON body, save it back.
type Prompts struct {
	deps *Deps

	templates []sdk.PromptTemplate
}

// NewPrompts builds the controller and registers its bus subscriptions.
func NewPrompts(deps *Deps) *Prompts {
	p := &Prompts{deps: deps}
	bus := deps.Mgr.Bus()
	bus.Subscribe(ui.Filter{WinID: WinPrompts, ElementID: TmplSelectElement}, p.onSelect)
	bus.Subscribe(ui.Filter{WinID: WinPrompts, ElementID: TmplSaveElement}, p.onSave)
	return p
}

// Open spawns the editor and fetches the template list.
func (p *Prompts) Open() (tea.Cmd, error) {
	_, err := p.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinPrompts,
		Title:  "Prompt Templates",
		Col:    ui.ColLeft,
		Unique: true,
		Height: 16,
		Elements: []ui.ElementSpec{
			{Type: ui.ElementSelect, ID: TmplSelectElement, Label: "Template"},
			{Type: ui.ElementTextArea, ID: TmplTextElement, Label: "Body (JSON)", Lines: 8},
			{Type: ui.ElementButton, ID: TmplSaveElement, Label: "Save", Action: "save"},
			{Type: ui.ElementNote, ID: TmplStatusElement, Text: "name and user_format are required"},
		},
	})
	if err != nil {
		return nil, err
	}
	return p.refresh(), nil
}

func (p *Prompts) refresh() tea.Cmd {
	client := p.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		templates, err := client.PromptTemplates(ctx)
		return PromptTemplatesMsg{Templates: templates, Err: err}
	}
}

// OnTemplates fills the selector and shows the first template.
func (p *Prompts) OnTemplates(msg PromptTemplatesMsg) {
	if msg.Err != nil {
		logger.Warn("Prompts: fetch failed: %v", msg.Err)
		return
	}
	p.templates = msg.Templates

	form := p.form()
	if form == nil {
		return
	}
	names := make([]string, 0, len(p.templates))
	for _, t := range p.templates {
		names = append(names, t.Name)
	}
	form.SetOptions(TmplSelectElement, names)
	if len(p.templates) > 0 {
		p.show(p.templates[0])
	}
}

func (p *Prompts) form() *ui.GenericContent {
	win, ok := p.deps.Mgr.Window(WinPrompts)
	if !ok {
		return nil
	}
	form, _ := win.Content.(*ui.GenericContent)
	return form
}

// show loads one template's JSON body into the editor.
func (p *Prompts) show(t sdk.PromptTemplate) {
	form := p.form()
	if form == nil {
		return
	}
	body, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		logger.Warn("Prompts: marshal failed: %v", err)
		return
	}
	form.SetValue(TmplTextElement, string(body))
}

// onSelect switches the editor to the chosen template.
func (p *Prompts) onSelect(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != "change" {
		return nil
	}
	form := p.form()
	if form == nil {
		return nil
	}
	name := form.Value(TmplSelectElement)
	for _, t := range p.templates {
		if t.Name == name {
			p.show(t)
			return nil
		}
	}
	return nil
}

// onSave validates and writes the edited template.
func (p *Prompts) onSave(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != "save" {
		return nil
	}
	form := p.form()
	if form == nil {
		return nil
	}

	var t sdk.PromptTemplate
	if err := json.Unmarshal([]byte(form.Value(TmplTextElement)), &t); err != nil {
		logger.Warn("Prompts: invalid JSON: %v", err)
		return nil
	}

	client := p.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := client.SavePromptTemplate(ctx, t)
		return PromptSavedMsg{Err: err}
	}
}

// OnSaved refreshes the template list after a write.
func (p *Prompts) OnSaved(msg PromptSavedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Prompts: save failed: %v", msg.Err)
		return nil
	}
	return p.refresh()
}
