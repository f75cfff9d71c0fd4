package panels

import "github.com/docdesk/docdesk/internal/sdk"

// Result messages produced by panel commands and routed back to the
// panels by the app model.

// DocumentsMsg carries the document library.
type DocumentsMsg struct {
	Docs []sdk.Document
	Err  error
}

// UploadDoneMsg reports an upload attempt.
type UploadDoneMsg struct {
	Path string
	Err  error
}

// DocRemovedMsg reports a document removal.
type DocRemovedMsg struct {
	Source string
	Err    error
}

// SessionsMsg carries the stored session list.
type SessionsMsg struct {
	Sessions []sdk.SessionInfo
	Err      error
}

// SessionHistoryMsg carries one session transcript.
type SessionHistoryMsg struct {
	ID    string
	Turns []sdk.Turn
	Err   error
}

// SessionReadyMsg carries the active session id.
type SessionReadyMsg struct {
	ID  string
	Err error
}

// SegmentsMsg carries a segment listing, scoped to a source when set.
type SegmentsMsg struct {
	Source string
	Segs   []sdk.Segment
	Err    error
}

// SegmentDetailMsg carries one full segment for the viewer.
type SegmentDetailMsg struct {
	Seg *sdk.Segment
	Err error
}

// SegmentRemovedMsg reports a segment removal.
type SegmentRemovedMsg struct {
	ID  string
	Err error
}

// SearchResultsMsg carries retrieval results.
type SearchResultsMsg struct {
	Query   string
	Results []sdk.Segment
	Err     error
}

// SettingsMsg carries the backend settings record.
type SettingsMsg struct {
	Settings *sdk.Settings
	Err      error
}

// SettingsSavedMsg reports a settings write.
type SettingsSavedMsg struct {
	Err error
}

// PromptTemplatesMsg carries the template list.
type PromptTemplatesMsg struct {
	Templates []sdk.PromptTemplate
	Err       error
}

// PromptSavedMsg reports a template write.
type PromptSavedMsg struct {
	Err error
}

// ChatChunkMsg carries one streamed chat chunk.
type ChatChunkMsg struct {
	Chunk sdk.Chunk
}

// ChatStartedMsg announces an open stream; the app starts the listen loop.
type ChatStartedMsg struct {
	Ch  <-chan sdk.Chunk
	Err error
}
