package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/docdesk/docdesk/internal/errors"
	"github.com/docdesk/docdesk/internal/logger"
)

// Column identifiers in window configs.
const (
	ColLeft  = "left"
	ColRight = "right"
)

// Window types with dedicated content renderers. Everything else defaults
// to the generic form/list renderer.
const (
	TypeGeneric     = "window_generic"
	TypeChat        = "window_chat"
	TypeSegmentView = "window_segment_view"
)

// WindowConfig declares a window to be created.
type WindowConfig struct {
	ID        string // Optional; a fresh id is minted on collision or absence
	Type      string // Renderer key; empty means window_generic
	Title     string
	Col       string // ColLeft or ColRight; ignored for modals
	Modal     bool
	Unique    bool // Spawn focuses an existing window with this id instead of duplicating
	Resizable bool // In addition to the types that are resizable by default
	Height    int  // Explicit initial height in rows (0 = default)
	Elements  []ElementSpec
}

// Content is a window interior. View must render to exactly the given
// size; Click receives content-local coordinates.
type Content interface {
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Click(x, y int) tea.Cmd
	Focus()
	Blur()
}

// Scroller is implemented by contents that handle mouse wheel scrolling.
type Scroller interface {
	Scroll(delta int)
}

// Renderer builds the content of a window from its config.
type Renderer func(m *Manager, cfg WindowConfig, winID string) (Content, error)

// Window is one live mini-window.
type Window struct {
	ID        string
	Type      string
	Title     string
	Modal     bool
	Resizable bool
	Collapsed bool

	// Height is the explicit total height in rows; 0 means default.
	Height     int
	prevHeight int

	// Modal drag offset from the centered position.
	OffsetX, OffsetY int

	Content Content
	focused bool
}

// Rows returns the total rows this window occupies.
func (w *Window) Rows() int {
	if w.Collapsed {
		return ChromeRows
	}
	if w.Height > 0 {
		return w.Height
	}
	return DefaultWindowHeight
}

// Focused reports whether this window has keyboard focus.
func (w *Window) Focused() bool {
	return w.focused
}

// ToggleCollapsed minimizes or restores the window. The previous explicit
// height survives a minimize/restore round trip.
func (w *Window) ToggleCollapsed() {
	if w.Collapsed {
		w.Collapsed = false
		w.Height = w.prevHeight
		return
	}
	w.prevHeight = w.Height
	w.Collapsed = true
}

// View renders the window chrome and content at the given width.
func (w *Window) View(width int, dragging bool) string {
	style := WindowStyle
	if dragging {
		style = WindowDraggingStyle
	} else if w.focused {
		style = WindowFocusedStyle
	}

	inner := width - BorderSize
	if inner < 4 {
		inner = 4
	}

	// Titlebar: title left, minimize and close controls right.
	controls := WindowControlStyle.Render("– ×")
	titleWidth := inner - runewidth.StringWidth("– ×") - 2
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := WindowTitleStyle.Render(Ellipsize(w.Title, titleWidth))
	pad := inner - lipgloss.Width(title) - lipgloss.Width(controls) - 1
	if pad < 0 {
		pad = 0
	}
	titlebar := title + strings.Repeat(" ", pad) + controls + " "

	var body string
	if w.Collapsed {
		body = titlebar
	} else {
		contentHeight := w.Rows() - ChromeRows
		if contentHeight < 1 {
			contentHeight = 1
		}
		var view string
		if w.Content != nil {
			view = w.Content.View(inner, contentHeight)
		}
		view = lipgloss.NewStyle().Width(inner).Height(contentHeight).MaxHeight(contentHeight).Render(view)
		body = titlebar + "\n" + view
	}

	box := style.Width(inner).Render(body)
	if w.Resizable && !w.Collapsed {
		box = markResizeHandle(box)
	}
	return box
}

// markResizeHandle replaces the bottom border line with a heavier rule so
// the resize affordance is visible.
func markResizeHandle(box string) string {
	lines := strings.Split(box, "\n")
	if len(lines) < 2 {
		return box
	}
	last := lines[len(lines)-1]
	last = strings.ReplaceAll(last, "─", "═")
	lines[len(lines)-1] = last
	return strings.Join(lines, "\n")
}

type listKey struct {
	winID  string
	elemID string
}

// Manager owns the renderer registry, live windows, columns, the modal
// stack, the event bus, and registered list components.
type Manager struct {
	renderers map[string]Renderer
	live      map[string]*Window
	lists     map[listKey]*ItemList

	Left   *Column
	Right  *Column
	Modals []*Window

	bus   *Bus
	prefs PrefStore
}

// PrefStore persists window geometry across runs.
type PrefStore interface {
	WindowHeight(id string) (int, bool)
	SetWindowHeight(id string, h int)
	GetSplitRatio() float64
	SetSplitRatio(r float64)
}

// NewManager creates a Manager with the generic renderer pre-registered.
func NewManager(prefs PrefStore) *Manager {
	m := &Manager{
		renderers: make(map[string]Renderer),
		live:      make(map[string]*Window),
		lists:     make(map[listKey]*ItemList),
		Left:      &Column{},
		Right:     &Column{},
		bus:       NewBus(),
		prefs:     prefs,
	}
	m.Register(TypeGeneric, NewGenericContent)
	return m
}

// Bus returns the manager's event bus.
func (m *Manager) Bus() *Bus {
	return m.bus
}

// Register installs a content renderer for a window type.
func (m *Manager) Register(windowType string, r Renderer) {
	m.renderers[windowType] = r
}

// Window returns a live window by id.
func (m *Manager) Window(id string) (*Window, bool) {
	w, ok := m.live[id]
	return w, ok
}

// resolveID returns a non-colliding window id, minting fresh ones while
// the requested id is taken or absent.
func (m *Manager) resolveID(requested string) string {
	id := requested
	for id == "" || m.live[id] != nil {
		id = "mw-" + uuid.NewString()
	}
	return id
}

// CreateWindow builds a window from its config without attaching it to a
// column. An unknown window type is a fatal configuration error.
func (m *Manager) CreateWindow(cfg WindowConfig) (*Window, error) {
	windowType := cfg.Type
	if windowType == "" {
		windowType = TypeGeneric
	}
	renderer, ok := m.renderers[windowType]
	if !ok {
		return nil, errors.UnknownWindowType(windowType)
	}

	id := m.resolveID(cfg.ID)

	win := &Window{
		ID:        id,
		Type:      windowType,
		Title:     cfg.Title,
		Modal:     cfg.Modal,
		Resizable: cfg.Resizable || windowType == TypeChat || windowType == TypeSegmentView,
		Height:    cfg.Height,
	}

	if h, ok := m.prefs.WindowHeight(id); ok {
		win.Height = h
	}

	content, err := renderer(m, cfg, id)
	if err != nil {
		return nil, err
	}
	win.Content = content

	m.live[id] = win
	logger.Debug("Window created: id=%s type=%s modal=%v", id, windowType, cfg.Modal)
	return win, nil
}

// Spawn creates a window and attaches it to its column or the modal stack.
// For Unique configs an existing window with the same id is focused
// instead of duplicated.
func (m *Manager) Spawn(cfg WindowConfig) (*Window, error) {
	if cfg.Unique && cfg.ID != "" {
		if existing, ok := m.live[cfg.ID]; ok {
			m.FocusWindow(existing.ID)
			return existing, nil
		}
	}

	win, err := m.CreateWindow(cfg)
	if err != nil {
		return nil, err
	}

	if win.Modal {
		m.Modals = append(m.Modals, win)
	} else if cfg.Col == ColRight {
		m.Right.Append(win)
	} else {
		m.Left.Append(win)
	}
	m.FocusWindow(win.ID)
	return win, nil
}

// Close removes a window. Closing a modal removes the whole overlay entry;
// there is no undo.
func (m *Manager) Close(id string) {
	win, ok := m.live[id]
	if !ok {
		return
	}

	if win.Modal {
		for i, mw := range m.Modals {
			if mw == win {
				m.Modals = append(m.Modals[:i], m.Modals[i+1:]...)
				break
			}
		}
	} else {
		m.Left.Remove(win)
		m.Right.Remove(win)
	}

	delete(m.live, id)
	for key := range m.lists {
		if key.winID == id {
			delete(m.lists, key)
		}
	}
	logger.Debug("Window closed: id=%s", id)
}

// TopModal returns the topmost modal window, if any.
func (m *Manager) TopModal() *Window {
	if len(m.Modals) == 0 {
		return nil
	}
	return m.Modals[len(m.Modals)-1]
}

// FocusWindow gives a window keyboard focus and blurs the rest.
func (m *Manager) FocusWindow(id string) {
	for _, w := range m.live {
		if w.focused && w.ID != id {
			w.focused = false
			if w.Content != nil {
				w.Content.Blur()
			}
		}
	}
	if w, ok := m.live[id]; ok {
		w.focused = true
		if w.Content != nil {
			w.Content.Focus()
		}
	}
}

// FocusedWindow returns the window holding keyboard focus.
func (m *Manager) FocusedWindow() *Window {
	for _, w := range m.live {
		if w.focused {
			return w
		}
	}
	return nil
}

// CycleFocus moves focus to the next window in column order.
func (m *Manager) CycleFocus() {
	order := append([]*Window{}, m.Left.Windows...)
	order = append(order, m.Right.Windows...)
	if len(order) == 0 {
		return
	}
	current := -1
	for i, w := range order {
		if w.focused {
			current = i
			break
		}
	}
	next := order[(current+1)%len(order)]
	m.FocusWindow(next.ID)
}

// RegisterList installs a list component for (winID, elemID). Called by
// the generic renderer when it encounters an item_list element.
func (m *Manager) RegisterList(winID, elemID string, tmpl ItemTemplate) *ItemList {
	key := listKey{winID: winID, elemID: elemID}
	l := newItemList(winID, elemID, tmpl, m.bus)
	m.lists[key] = l
	return l
}

// List returns the list component registered for (winID, elemID).
func (m *Manager) List(winID, elemID string) (*ItemList, bool) {
	l, ok := m.lists[listKey{winID: winID, elemID: elemID}]
	return l, ok
}

// Prefs exposes the geometry store to session controllers.
func (m *Manager) Prefs() PrefStore {
	return m.prefs
}
