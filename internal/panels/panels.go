// Package panels contains the controllers behind each window: they spawn
// window configs, subscribe to bus events, call the backend, and render
// results into registered lists.
package panels

import (
	"context"
	"time"

	"github.com/docdesk/docdesk/internal/config"
	"github.com/docdesk/docdesk/internal/sdk"
	"github.com/docdesk/docdesk/internal/ui"
)

// requestTimeout bounds every one-shot backend call.
const requestTimeout = 15 * time.Second

// Deps is what every panel controller needs.
type Deps struct {
	Mgr    *ui.Manager
	Client *sdk.Client
	Cfg    *config.Config
}

// Panels wires all controllers together. Cross-panel calls (a doc click
// scoping the segments window, search results opening viewers) go through
// this struct.
type Panels struct {
	Docs     *Docs
	Sessions *Sessions
	Search   *Search
	Segments *Segments
	Chat     *Chat
	Persona  *Persona
	Settings *Settings
	Prompts  *Prompts
}

// New builds all panel controllers and registers their bus subscriptions.
func New(deps *Deps) *Panels {
	p := &Panels{}
	p.Segments = NewSegments(deps)
	p.Chat = NewChat(deps)
	p.Docs = NewDocs(deps, p)
	p.Sessions = NewSessions(deps, p)
	p.Search = NewSearch(deps, p)
	p.Persona = NewPersona(deps)
	p.Settings = NewSettings(deps)
	p.Prompts = NewPrompts(deps)
	return p
}

// reqCtx returns a context for a one-shot backend request.
func reqCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
