package panels

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the document library.
const (
	WinDocs        = "win_docs"
	DocListElement = "doc_list"
	DocsUploadElem = "docs_upload"
)

// Docs drives the document library window: upload row, and a list with
// active/inactive toggles and removal.
type Docs struct {
	deps *Deps
	all  *Panels

	docs []sdk.Document
}

// NewDocs builds the controller and registers its bus subscriptions.
func NewDocs(deps *Deps, all *Panels) *Docs {
	d := &Docs{deps: deps, all: all}
	bus := deps.Mgr.Bus()

	bus.Subscribe(ui.Filter{WinID: WinDocs, ElementID: DocListElement}, d.onListEvent)
	bus.Subscribe(ui.Filter{WinID: WinDocs, ElementID: DocsUploadElem}, d.onUploadEvent)
	return d
}

// Open spawns the document library window.
func (d *Docs) Open() error {
	_, err := d.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinDocs,
		Title:  "Documents",
		Col:    ui.ColLeft,
		Unique: true,
		Elements: []ui.ElementSpec{
			{
				Type:        ui.ElementFileUpload,
				ID:          DocsUploadElem,
				Label:       "Add document",
				Placeholder: "/path/to/file",
				Action:      "upload",
			},
			{
				Type: ui.ElementItemList,
				ID:   DocListElement,
				Template: ui.ItemTemplate{
					TitleKey:    "title",
					SubtitleKey: "subtitle",
					Buttons: []ui.ItemButton{
						{
							Action: "toggle_active",
							Toggle: &ui.Toggle{Prop: "active", On: "Deactivate", Off: "Activate"},
						},
						{Label: "Remove", Action: "remove"},
					},
				},
			},
		},
	})
	return err
}

// Refresh fetches the document library.
func (d *Docs) Refresh() tea.Cmd {
	client := d.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		docs, err := client.Documents(ctx)
		return DocumentsMsg{Docs: docs, Err: err}
	}
}

// OnDocuments renders the library into the list.
func (d *Docs) OnDocuments(msg DocumentsMsg) {
	if msg.Err != nil {
		logger.Warn("Docs: refresh failed: %v", msg.Err)
		return
	}
	d.docs = msg.Docs
	d.render()
}

func (d *Docs) render() {
	list, ok := d.deps.Mgr.List(WinDocs, DocListElement)
	if !ok {
		return
	}
	items := make([]ui.Item, 0, len(d.docs))
	for _, doc := range d.docs {
		items = append(items, ui.Item{
			"id":       doc.ID,
			"title":    doc.Title,
			"subtitle": fmt.Sprintf("%d segments", doc.Segments),
			"source":   doc.Source,
			"active":   d.deps.Cfg.IsDocActive(doc.Source),
		})
	}
	list.Render(items)
}

// onListEvent handles toggles, removals, and row selection.
func (d *Docs) onListEvent(ev ui.Event) tea.Cmd {
	switch e := ev.(type) {
	case ui.ListAction:
		source := e.Item.Str("source")
		switch e.Action {
		case "toggle_active":
			active := d.deps.Cfg.ToggleDoc(source)
			if err := d.deps.Cfg.Save(); err != nil {
				logger.Warn("Docs: config save failed: %v", err)
			}
			logger.Info("Docs: %s now active=%v", source, active)
			d.render()
			return nil
		case "remove":
			return d.remove(source)
		}
	case ui.ListSelect:
		// Selecting a document scopes the segments window to it.
		return d.all.Segments.SetSource(e.Item.Str("source"))
	}
	return nil
}

func (d *Docs) remove(source string) tea.Cmd {
	client := d.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := client.Remove(ctx, source)
		return DocRemovedMsg{Source: source, Err: err}
	}
}

// OnRemoved refreshes the library after a removal.
func (d *Docs) OnRemoved(msg DocRemovedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Docs: remove failed: %v", msg.Err)
		return nil
	}
	return d.Refresh()
}

// onUploadEvent starts an upload from the path field.
func (d *Docs) onUploadEvent(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok {
		return nil
	}
	if e.Action != "upload" && e.Action != "submit" {
		return nil
	}

	win, ok := d.deps.Mgr.Window(WinDocs)
	if !ok {
		return nil
	}
	form, ok := win.Content.(*ui.GenericContent)
	if !ok {
		return nil
	}
	path := strings.TrimSpace(form.Value(DocsUploadElem))
	if path == "" {
		return nil
	}
	form.SetValue(DocsUploadElem, "")

	client := d.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := client.Upload(ctx, path)
		return UploadDoneMsg{Path: path, Err: err}
	}
}

// OnUploaded refreshes the library after an upload.
func (d *Docs) OnUploaded(msg UploadDoneMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Docs: upload of %s failed: %v", msg.Path, msg.Err)
		return nil
	}
	return d.Refresh()
}
