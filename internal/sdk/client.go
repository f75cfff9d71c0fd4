// Package sdk is the HTTP client for the docdesk backend. All document,
// segment, session, and settings operations go through Client; streaming
// chat lives in stream.go.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docdesk/docdesk/internal/errors"
	"github.com/docdesk/docdesk/internal/logger"
)

// Document is one entry in the document library.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Segments int    `json:"segments"`
}

// Segment is one indexed chunk of a document.
type Segment struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	SegmentIndex int     `json:"segment_index"`
	Priority     int     `json:"priority"`
	Preview      string  `json:"preview,omitempty"`
	Text         string  `json:"text,omitempty"`
	StartChar    int     `json:"start_char,omitempty"`
	EndChar      int     `json:"end_char,omitempty"`
	Page         int     `json:"page,omitempty"`
	Score        float64 `json:"score,omitempty"`
}

// SessionInfo identifies a stored chat session.
type SessionInfo struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title,omitempty"`
	Updated   string `json:"updated,omitempty"`
	Turns     int    `json:"turns,omitempty"`
}

// Turn is one user/assistant exchange in a session transcript.
type Turn struct {
	User      string
	Assistant string
}

// Settings mirrors the backend's editable settings record.
type Settings struct {
	LLMTargetAddress string `json:"llm_target_address"`
	LLMAPIToken      string `json:"llm_api_token"`
}

// PromptTemplate is an editable prompt template record.
type PromptTemplate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UserFormat string `json:"user_format"`
	System     string `json:"system,omitempty"`
}

// Client talks to the docdesk backend over HTTP.
type Client struct {
	mu    sync.RWMutex
	base  string
	token string
	httpc *http.Client
}

// New creates a Client for the given base URL. The token may be empty.
func New(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBase changes the backend base URL (welcome modal, settings save).
func (c *Client) SetBase(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = strings.TrimRight(base, "/")
}

// SetToken changes the bearer token sent with requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) url(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base + path
}

func (c *Client) do(ctx context.Context, op errors.Op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	u := c.url(path)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.RequestFailed(op, u, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.RequestFailed(op, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, errors.BadStatus(op, u, resp.Status)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, op errors.Op, path string, out interface{}) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// Documents lists the document library.
func (c *Client) Documents(ctx context.Context) ([]Document, error) {
	var payload struct {
		Documents []Document `json:"documents"`
	}
	if err := c.getJSON(ctx, "sdk.Documents", "/documents", &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// Upload sends a local file to the backend for indexing.
func (c *Client) Upload(ctx context.Context, path string) error {
	const op = errors.Op("sdk.Upload")

	f, err := os.Open(path)
	if err != nil {
		return errors.E(op, errors.KindIO, fmt.Sprintf("cannot open %s", path), err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	if err := w.Close(); err != nil {
		return errors.E(op, errors.KindIO, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, "/upload", &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	resp.Body.Close()
	logger.Info("Uploaded %s", filepath.Base(path))
	return nil
}

// Remove deletes a document (and its segments) by source name.
func (c *Client) Remove(ctx context.Context, source string) error {
	form := url.Values{"source": {source}}
	resp, err := c.do(ctx, "sdk.Remove", http.MethodPost, "/remove",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Segments lists segments, optionally scoped to one document source.
func (c *Client) Segments(ctx context.Context, source string) ([]Segment, error) {
	path := "/segments"
	if source != "" {
		path += "?source=" + url.QueryEscape(source)
	}
	var payload struct {
		Segments []Segment `json:"segments"`
	}
	if err := c.getJSON(ctx, "sdk.Segments", path, &payload); err != nil {
		return nil, err
	}
	return payload.Segments, nil
}

// Segment fetches one segment with its full text.
func (c *Client) Segment(ctx context.Context, id string) (*Segment, error) {
	var seg Segment
	if err := c.getJSON(ctx, "sdk.Segment", "/segments/"+url.PathEscape(id), &seg); err != nil {
		return nil, err
	}
	return &seg, nil
}

// RemoveSegment deletes a single segment.
func (c *Client) RemoveSegment(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "sdk.RemoveSegment", http.MethodDelete, "/segments/"+url.PathEscape(id), nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Search runs a retrieval query. Inactive sources are excluded server-side.
func (c *Client) Search(ctx context.Context, query string, topK int, inactive []string) ([]Segment, error) {
	v := url.Values{}
	v.Set("q", query)
	if topK > 0 {
		v.Set("top_k", strconv.Itoa(topK))
	}
	if len(inactive) > 0 {
		v.Set("inactive", strings.Join(inactive, ","))
	}
	var payload struct {
		Results []Segment `json:"results"`
	}
	if err := c.getJSON(ctx, "sdk.Search", "/search?"+v.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Sessions lists stored chat sessions.
func (c *Client) Sessions(ctx context.Context) ([]SessionInfo, error) {
	var payload struct {
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := c.getJSON(ctx, "sdk.Sessions", "/sessions", &payload); err != nil {
		return nil, err
	}
	return payload.Sessions, nil
}

// SessionHistory loads the transcript of one session. The backend returns
// history as an array of [user, assistant] pairs.
func (c *Client) SessionHistory(ctx context.Context, id string) ([]Turn, error) {
	var payload struct {
		History [][]string `json:"history"`
	}
	if err := c.getJSON(ctx, "sdk.SessionHistory", "/sessions/"+url.PathEscape(id), &payload); err != nil {
		return nil, err
	}
	turns := make([]Turn, 0, len(payload.History))
	for _, pair := range payload.History {
		t := Turn{}
		if len(pair) > 0 {
			t.User = pair[0]
		}
		if len(pair) > 1 {
			t.Assistant = pair[1]
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// EnsureSession asks the backend for the current session id, creating one
// if needed.
func (c *Client) EnsureSession(ctx context.Context) (string, error) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := c.getJSON(ctx, "sdk.EnsureSession", "/session", &payload); err != nil {
		return "", err
	}
	return payload.SessionID, nil
}

// GetSettings fetches the backend settings record.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.getJSON(ctx, "sdk.GetSettings", "/api/settings", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings writes the backend settings record.
func (c *Client) SaveSettings(ctx context.Context, s Settings) error {
	const op = errors.Op("sdk.SaveSettings")
	body, err := json.Marshal(s)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.do(ctx, op, http.MethodPut, "/api/settings", bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// PromptTemplates lists editable prompt templates.
func (c *Client) PromptTemplates(ctx context.Context) ([]PromptTemplate, error) {
	var payload struct {
		Templates []PromptTemplate `json:"templates"`
	}
	if err := c.getJSON(ctx, "sdk.PromptTemplates", "/api/prompt-templates", &payload); err != nil {
		return nil, err
	}
	return payload.Templates, nil
}

// PromptTemplate fetches one template by id.
func (c *Client) PromptTemplate(ctx context.Context, id string) (*PromptTemplate, error) {
	var t PromptTemplate
	if err := c.getJSON(ctx, "sdk.PromptTemplate", "/api/prompt-templates/"+url.PathEscape(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SavePromptTemplate writes one template. Name and user_format are required.
func (c *Client) SavePromptTemplate(ctx context.Context, t PromptTemplate) error {
	const op = errors.Op("sdk.SavePromptTemplate")
	if t.Name == "" || t.UserFormat == "" {
		return errors.E(op, errors.KindInvalid, "name and user_format are required")
	}
	body, err := json.Marshal(t)
	if err != nil {
		return errors.E(op, errors.KindInvalid, err)
	}
	resp, err := c.do(ctx, op, http.MethodPut, "/api/prompt-templates/"+url.PathEscape(t.ID),
		bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
