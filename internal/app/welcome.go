package app

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/docdesk/docdesk/internal/config"
	"github.com/docdesk/docdesk/internal/keys"
	"github.com/docdesk/docdesk/internal/ui"
)

// Welcome is the first-run form asking for the backend address and token.
// It takes over the whole screen until completed or skipped.
type Welcome struct {
	form        *huh.Form
	initialized bool
	done        bool

	serverURL string
	token     string
}

// NewWelcome builds the form pre-filled from config.
func NewWelcome(cfg *config.Config) *Welcome {
	w := &Welcome{
		serverURL: cfg.GetServerURL(),
		token:     cfg.GetAPIToken(),
	}
	if w.serverURL == "" {
		w.serverURL = config.DefaultServerURL
	}

	w.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Server URL").
			Placeholder(config.DefaultServerURL).
			Value(&w.serverURL),
		huh.NewInput().
			Title("API token (optional)").
			Placeholder("leave empty for none").
			Value(&w.token),
	)).
		WithTheme(ui.FormTheme()).
		WithShowHelp(false).
		WithWidth(50).
		WithLayout(huh.LayoutStack)

	// Eager init so the form renders correctly on the first frame.
	w.form.Init()
	w.initialized = true

	return w
}

// Done reports whether the form has been completed or dismissed.
func (w *Welcome) Done() bool {
	return w.done
}

// Values returns the entered server URL and token.
func (w *Welcome) Values() (serverURL, token string) {
	return w.serverURL, w.token
}

// Update feeds one message to the form. Escape keeps the current values
// and dismisses; Enter advances fields and completes on the last one.
func (w *Welcome) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == keys.Escape {
		w.done = true
		return nil
	}

	m, cmd := w.form.Update(msg)
	w.form = m.(*huh.Form)

	if w.form.State == huh.StateCompleted {
		w.done = true
	}
	return cmd
}

// View renders the centered welcome screen.
func (w *Welcome) View(width, height int) string {
	title := ui.ModalTitleStyle.Render("Welcome to docdesk")

	intro := lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Width(50).
		Render("docdesk talks to a document-chat backend. Point it at your server to get started. Both values can be changed later in the config file.")

	help := ui.NoteStyle.Render("enter: continue  esc: skip")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		intro,
		"",
		w.form.View(),
		"",
		help,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
