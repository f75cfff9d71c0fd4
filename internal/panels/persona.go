package panels

import (
	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the persona editor.
const (
	WinPersona         = "modal_persona"
	PersonaTextElement = "persona_text"
	PersonaSaveElement = "persona_save"
)

// Persona drives the modal persona editor. The persona text is sent with
// every chat request and persisted locally.
type Persona struct {
	deps *Deps
}

// NewPersona builds the controller and registers its bus subscriptions.
func NewPersona(deps *Deps) *Persona {
	p := &Persona{deps: deps}
	deps.Mgr.Bus().Subscribe(ui.Filter{WinID: WinPersona, ElementID: PersonaSaveElement}, p.onSave)
	return p
}

// Open spawns the persona modal pre-filled with the stored text.
func (p *Persona) Open() error {
	_, err := p.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinPersona,
		Title:  "Persona",
		Modal:  true,
		Unique: true,
		Height: 12,
		Elements: []ui.ElementSpec{
			{Type: ui.ElementNote, Text: "Sets the assistant's voice for every chat turn."},
			{
				Type:        ui.ElementTextArea,
				ID:          PersonaTextElement,
				Label:       "Persona",
				Placeholder: "You are a careful research assistant...",
				Value:       p.deps.Cfg.GetPersona(),
				Lines:       5,
			},
			{Type: ui.ElementButton, ID: PersonaSaveElement, Label: "Save", Action: "save"},
		},
	})
	return err
}

// onSave persists the persona and closes the modal.
func (p *Persona) onSave(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != "save" {
		return nil
	}
	win, ok := p.deps.Mgr.Window(WinPersona)
	if !ok {
		return nil
	}
	form, ok := win.Content.(*ui.GenericContent)
	if !ok {
		return nil
	}

	p.deps.Cfg.SetPersona(form.Value(PersonaTextElement))
	if err := p.deps.Cfg.Save(); err != nil {
		logger.Warn("Persona: config save failed: %v", err)
	}
	p.deps.Mgr.Close(WinPersona)
	return nil
}
