package sdk

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/docdesk/docdesk/internal/errors"
	"github.com/docdesk/docdesk/internal/logger"
)

// ChatRequest is the payload for a streaming chat turn.
type ChatRequest struct {
	Message   string   `json:"message"`
	SessionID string   `json:"session_id,omitempty"`
	Persona   string   `json:"persona,omitempty"`
	Inactive  []string `json:"inactive,omitempty"`
}

// Chunk is one unit of streamed chat output. Exactly one terminal chunk is
// delivered per stream: either Done or Err is set, never both mid-stream.
type Chunk struct {
	Delta string
	Done  bool
	Err   error
}

// StreamChat starts a streaming chat turn and returns a channel of chunks.
// The channel is closed after the terminal chunk. Cancel the context to
// abort the stream.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest) (<-chan Chunk, error) {
	const op = errors.Op("sdk.StreamChat")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.E(op, errors.KindInvalid, err)
	}

	// A bare /chat POST returns a single JSON reply; stream=true asks the
	// backend for server-sent events instead.
	resp, err := c.do(ctx, op, http.MethodPost, "/chat?stream=true", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}

	ch := make(chan Chunk, 16)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		// Terminal sends go through the same guard as deltas so the
		// goroutine cannot block forever on an abandoned channel.
		terminal := func(chunk Chunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(splitFrames)

		for scanner.Scan() {
			delta, done := parseFrame(scanner.Text())
			if done {
				terminal(Chunk{Done: true})
				return
			}
			if delta == "" {
				continue
			}
			select {
			case ch <- Chunk{Delta: delta}:
			case <-ctx.Done():
				select {
				case ch <- Chunk{Err: ctx.Err()}:
				default:
				}
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			logger.Warn("Chat stream ended with error: %v", err)
			terminal(Chunk{Err: errors.E(op, errors.KindNetwork, err)})
			return
		}
		terminal(Chunk{Done: true})
	}()

	return ch, nil
}

// splitFrames is a bufio.SplitFunc that yields server-sent-event frames,
// which are separated by a blank line.
func splitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.Index(data, []byte("\n\n")); i >= 0 {
		return i + 2, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseFrame extracts the text delta from one SSE frame. Heartbeat frames
// ("." payloads) produce nothing; a "[DONE]" payload or a "done" event ends
// the stream. Data payloads are either plain text or a JSON object whose
// delta lives under "delta", "response", or the first string value.
func parseFrame(frame string) (delta string, done bool) {
	var event, data string
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			if data != "" {
				data += "\n"
			}
			data += strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
		}
	}

	if event == "done" || data == "[DONE]" {
		return "", true
	}
	if data == "" || data == "." {
		return "", false
	}

	if strings.HasPrefix(data, "{") {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(data), &obj); err == nil {
			if s, ok := obj["delta"].(string); ok {
				return s, false
			}
			if s, ok := obj["response"].(string); ok {
				return s, false
			}
			// Fall back to the first string value in key order so the
			// same frame always yields the same text.
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := obj[k].(string); ok {
					return s, false
				}
			}
			return "", false
		}
	}
	return data, false
}
