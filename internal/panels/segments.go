package panels

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/docdesk/docdesk/internal/clipboard"
	"github.com/docdesk/docdesk/internal/logger"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// Window and element ids for the segment browser.
const (
	WinSegments        = "win_segments"
	SegmentListElement = "segment_list"
)

// Segments drives the segment browser window and the per-segment viewer
// windows it spawns.
type Segments struct {
	deps *Deps

	// currentSource scopes the listing; empty lists everything.
	currentSource string
}

// NewSegments builds the controller and registers its bus subscriptions.
func NewSegments(deps *Deps) *Segments {
	s := &Segments{deps: deps}
	bus := deps.Mgr.Bus()
	bus.Subscribe(ui.Filter{WinID: WinSegments, ElementID: SegmentListElement}, s.onListEvent)
	// Copy actions arrive from any viewer window; filter on element only.
	bus.Subscribe(ui.Filter{ElementID: ui.SegmentCopyElement}, s.onCopy)
	return s
}

// Open spawns the segment browser window.
func (s *Segments) Open() error {
	_, err := s.deps.Mgr.Spawn(ui.WindowConfig{
		ID:     WinSegments,
		Title:  "Segments",
		Col:    ui.ColRight,
		Unique: true,
		Elements: []ui.ElementSpec{
			{
				Type: ui.ElementItemList,
				ID:   SegmentListElement,
				Template: ui.ItemTemplate{
					TitleKey:    "title",
					SubtitleKey: "preview",
					Buttons: []ui.ItemButton{
						{Label: "Open", Action: "open"},
						{Label: "Remove", Action: "remove"},
					},
				},
			},
		},
	})
	return err
}

// SetSource scopes the listing to one document and refreshes.
func (s *Segments) SetSource(source string) tea.Cmd {
	s.currentSource = source
	return s.Refresh()
}

// Refresh fetches segments for the current scope.
func (s *Segments) Refresh() tea.Cmd {
	client := s.deps.Client
	source := s.currentSource
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		segs, err := client.Segments(ctx, source)
		return SegmentsMsg{Source: source, Segs: segs, Err: err}
	}
}

// OnSegments renders the listing.
func (s *Segments) OnSegments(msg SegmentsMsg) {
	if msg.Err != nil {
		logger.Warn("Segments: refresh failed: %v", msg.Err)
		return
	}
	if msg.Source != s.currentSource {
		return // Stale response from a previous scope
	}
	list, ok := s.deps.Mgr.List(WinSegments, SegmentListElement)
	if !ok {
		return
	}
	list.Render(segmentItems(msg.Segs))
}

// segmentItems converts segments into list rows.
func segmentItems(segs []sdk.Segment) []ui.Item {
	items := make([]ui.Item, 0, len(segs))
	for _, seg := range segs {
		items = append(items, ui.Item{
			"id":      seg.ID,
			"title":   segTitle(seg),
			"preview": seg.Preview,
			"source":  seg.Source,
		})
	}
	return items
}

func segTitle(seg sdk.Segment) string {
	return seg.Source + " #" + strconv.Itoa(seg.SegmentIndex)
}

// onListEvent opens viewers and removes segments.
func (s *Segments) onListEvent(ev ui.Event) tea.Cmd {
	switch e := ev.(type) {
	case ui.ListAction:
		id := e.Item.Str("id")
		switch e.Action {
		case "open":
			return s.fetchDetail(id)
		case "remove":
			return s.remove(id)
		}
	case ui.ListSelect:
		return s.fetchDetail(e.Item.Str("id"))
	}
	return nil
}

func (s *Segments) fetchDetail(id string) tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		seg, err := client.Segment(ctx, id)
		return SegmentDetailMsg{Seg: seg, Err: err}
	}
}

func (s *Segments) remove(id string) tea.Cmd {
	client := s.deps.Client
	return func() tea.Msg {
		ctx, cancel := reqCtx()
		defer cancel()
		err := client.RemoveSegment(ctx, id)
		return SegmentRemovedMsg{ID: id, Err: err}
	}
}

// OnRemoved refreshes the listing after a removal.
func (s *Segments) OnRemoved(msg SegmentRemovedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Segments: remove failed: %v", msg.Err)
		return nil
	}
	return s.Refresh()
}

// OnDetail spawns (or focuses) a viewer window for a fetched segment.
// Viewer ids are derived from the segment id; spawning a second viewer
// with a colliding id coexists under a minted id.
func (s *Segments) OnDetail(msg SegmentDetailMsg) {
	if msg.Err != nil || msg.Seg == nil {
		logger.Warn("Segments: detail fetch failed: %v", msg.Err)
		return
	}
	seg := msg.Seg

	win, err := s.deps.Mgr.Spawn(ui.WindowConfig{
		ID:    "seg_view_" + seg.ID,
		Type:  ui.TypeSegmentView,
		Title: segTitle(*seg),
		Col:   ui.ColRight,
	})
	if err != nil {
		logger.Error("Segments: viewer spawn failed: %v", err)
		return
	}
	if view, ok := win.Content.(*ui.SegmentViewContent); ok {
		view.SetSegment(seg.Source, seg.SegmentIndex, seg.Page, seg.Score, seg.Text)
	}
}

// onCopy copies a viewer's body text to the clipboard.
func (s *Segments) onCopy(ev ui.Event) tea.Cmd {
	e, ok := ev.(ui.Action)
	if !ok || e.Action != ui.SegmentCopyAction {
		return nil
	}
	win, ok := s.deps.Mgr.Window(e.WinID)
	if !ok {
		return nil
	}
	view, ok := win.Content.(*ui.SegmentViewContent)
	if !ok {
		return nil
	}
	if err := clipboard.WriteText(view.Body()); err != nil {
		logger.Warn("Segments: clipboard write failed: %v", err)
	}
	return nil
}
