package panels

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the search panel.
const (
	WinSearch            = "win_search"
	SearchQueryElement   = "search_q"
	SearchTopKElement    = "search_k"
	SearchButtonElement  = "search_btn"
	SearchResultsElement = "search_results"

	defaultTopK = 5
)

// Search drives the retrieval query window.
type Search struct {
	deps *Deps
	all  *Panels
}

// NewSearch builds the controller and registers its bus subscriptions.
func NewSearch(deps *Deps, all *Panels) *Search {
	s := &Search{deps: deps, all: all}
	bus := deps.Mgr.Bus()
	bus.Subscribe(ui.Filter{WinID: WinSearch, ElementID: SearchButtonElement}, s.onRun)
	bus.Subscribe(ui.Filter{WinID: WinSearch, ElementID: SearchQueryElement}, s.onRun)
	bus.Subscribe(ui.Filter{WinID: WinSearch, ElementID: SearchResultsElement}, s.onListEvent)
	return s
}

// Open spawns the search window.
func (s *Search) Open() error {
	_, err := s.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinSearch,
		Title:  "Search",
		Col:    ui.ColRight,
		Unique: true,
		Elements: []ui.ElementSpec{
			{Type: ui.ElementTextField, ID: SearchQueryElement, Label: "Query", Placeholder: "search the library"},
			{Type: ui.ElementNumberField, ID: SearchTopKElement, Label: "Top K", Value: "5"},
			{Type: ui.ElementButton, ID: SearchButtonElement, Label: "Search", Action: "run_search"},
			{
				Type: ui.ElementItemList,
				ID:   SearchResultsElement,
				Template: ui.ItemTemplate{
					TitleKey:    "title",
					SubtitleKey: "preview",
					Buttons: []ui.ItemButton{
						{Label: "Open", Action: "open"},
					},
				},
			},
		},
	})
	return err
}

// onRun executes a query from the button or Enter in the query field.
func (s *Search) onRun(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok {
		return nil
	}
	if e.Action != "run_search" && e.Action != "submit" {
		return nil
	}

	win, ok := s.deps.Mgr.Window(WinSearch)
	if !ok {
		return nil
	}
	form, ok := win.Content.(*ui.GenericContent)
	if !ok {
		return nil
	}
	query := strings.TrimSpace(form.Value(SearchQueryElement))
	if query == "" {
		return nil
	}
	topK := form.IntValue(SearchTopKElement, defaultTopK)
	inactive := s.deps.Cfg.InactiveList()

	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		results, err := client.Search(ctx, query, topK, inactive)
		return SearchResultsMsg{Query: query, Results: results, Err: err}
	}
}

// OnResults renders the result list.
func (s *Search) OnResults(msg SearchResultsMsg) {
	if msg.Err != nil {
		logger.Warn("Search: query failed: %v", msg.Err)
		return
	}
	list, ok := s.deps.Mgr.List(WinSearch, SearchResultsElement)
	if !ok {
		return
	}
	list.Render(segmentItems(msg.Results))
}

// onListEvent opens a viewer for a result.
func (s *Search) onListEvent(ev ui.Event) tea.Cmd {
	switch e := ev.(type) {
	case ui.ListAction:
		if e.Action == "open" {
			return s.all.Segments.fetchDetail(e.Item.Str("id"))
		}
	case ui.ListSelect:
		return s.all.Segments.fetchDetail(e.Item.Str("id"))
	}
	return nil
}
