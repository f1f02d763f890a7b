package analytics

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingClient struct {
	mu     sync.Mutex
	bodies []string
	done   chan struct{}
}

func (c *recordingClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	raw, _ := io.ReadAll(body)
	c.mu.Lock()
	c.bodies = append(c.bodies, string(raw))
	c.mu.Unlock()
	c.done <- struct{}{}
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitEventPostsEvent(t *testing.T) {
	client := &recordingClient{done: make(chan struct{}, 1)}
	svc := NewService(client, testLogger())

	svc.EmitEvent(svc.NewToolEvent("get_tickers", "ok"))

	select {
	case <-client.done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was never posted")
	}

	var event TrackEvent
	if err := json.Unmarshal([]byte(client.bodies[0]), &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if event.Name != "tool_call" {
		t.Errorf("name = %q", event.Name)
	}
	if event.EventID == "" {
		t.Error("missing event id")
	}
	if event.Properties["tool"] != "get_tickers" || event.Properties["outcome"] != "ok" {
		t.Errorf("properties = %v", event.Properties)
	}
}

func TestDisabledServiceEmitsNothing(t *testing.T) {
	client := &recordingClient{done: make(chan struct{}, 1)}
	svc := NewService(client, testLogger())
	svc.Disable()

	svc.EmitEvent(svc.NewToolEvent("get_tickers", "ok"))

	select {
	case <-client.done:
		t.Fatal("disabled service posted an event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilClientStaysDisabled(t *testing.T) {
	svc := NewService(nil, testLogger())
	svc.Enable()

	// Must not panic without a client.
	svc.EmitEvent(svc.NewStartupEvent(StartupEventInfo{Version: "test"}))
}
