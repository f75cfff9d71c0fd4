package sdk

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		want     string
		wantDone bool
	}{
		{"plain data", "data: hello", "hello", false},
		{"delta object", `data: {"delta": "abc"}`, "abc", false},
		{"response object", `data: {"response": "xyz"}`, "xyz", false},
		{"first string value", `data: {"content": "fallback"}`, "fallback", false},
		{"object without strings", `data: {"n": 3}`, "", false},
		{"heartbeat", "data: .", "", false},
		{"empty data", "data:", "", false},
		{"done sentinel", "data: [DONE]", "", true},
		{"done event", "event: done\ndata: {}", "", true},
		{"multiline data", "data: one\ndata: two", "one\ntwo", false},
		{"fallback picks lowest key", `data: {"zeta": "z", "alpha": "a"}`, "a", false},
		{"crlf endings", "data: hi\r", "hi", false},
		{"no data lines", "event: ping", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, done := parseFrame(tt.frame)
			if got != tt.want || done != tt.wantDone {
				t.Errorf("parseFrame(%q) = (%q, %v), want (%q, %v)",
					tt.frame, got, done, tt.want, tt.wantDone)
			}
		})
	}
}

func TestStreamChat_RequestSignalsStreaming(t *testing.T) {
	var gotPath, gotStream string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStream = r.URL.Query().Get("stream")
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: hi\n\ndata: [DONE]\n\n"))
	}))
	defer srv.Close()

	ch, err := New(srv.URL, "").StreamChat(context.Background(), ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("StreamChat failed: %v", err)
	}
	for range ch {
	}

	if gotPath != "/chat" {
		t.Errorf("Path = %q, want /chat", gotPath)
	}
	// Without stream=true the backend answers with a single JSON body.
	if gotStream != "true" {
		t.Errorf("stream = %q, want true", gotStream)
	}
}

func TestStreamChat_CancelClosesChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// More frames than the channel buffers, and no terminal frame,
		// so the producer is left waiting on the consumer.
		for i := 0; i < 24; i++ {
			w.Write([]byte("data: x\n\n"))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := New(srv.URL, "").StreamChat(ctx, ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("StreamChat failed: %v", err)
	}

	cancel()

	// The producer must notice the cancellation and close the channel
	// even though nothing was read; otherwise this loop never ends.
	for range ch {
	}
}

func TestSplitFrames(t *testing.T) {
	input := "data: a\n\ndata: b\ndata: c\n\ndata: tail"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(splitFrames)

	var frames []string
	for scanner.Scan() {
		frames = append(frames, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Scanner error: %v", err)
	}

	want := []string{"data: a", "data: b\ndata: c", "data: tail"}
	if len(frames) != len(want) {
		t.Fatalf("Got %d frames, want %d: %v", len(frames), len(want), frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("Frame %d = %q, want %q", i, frames[i], want[i])
		}
	}
}
