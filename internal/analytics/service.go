package analytics

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const defaultEndpoint = "https://telemetry.bybit-mcp.dev/track"

// TrackEvent is a single usage event. Properties carry only coarse metadata
// such as tool names and outcome labels, never arguments or payloads.
type TrackEvent struct {
	EventID    string         `json:"eventId"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// StartupEventInfo describes the server at boot.
type StartupEventInfo struct {
	Version        string
	Network        string
	TradingEnabled bool
	ToolCount      int
}

type service struct {
	endpoint string
	client   HTTPClient
	logger   *slog.Logger
	enabled  atomic.Bool
}

// NewService builds the default telemetry service. Pass a nil client to keep
// telemetry constructed but disabled, which is the mode tests run in.
func NewService(client HTTPClient, logger *slog.Logger) Service {
	s := &service{
		endpoint: defaultEndpoint,
		client:   client,
		logger:   logger,
	}
	if client != nil {
		s.enabled.Store(true)
	}
	return s
}

func (s *service) Enable() {
	if s.client != nil {
		s.enabled.Store(true)
	}
}

func (s *service) Disable() { s.enabled.Store(false) }

// EmitEvent fires and forgets. Failures are logged at debug and dropped so
// telemetry can never affect a tool call.
func (s *service) EmitEvent(event TrackEvent) {
	if !s.enabled.Load() {
		return
	}
	go func() {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Debug("analytics marshal failed", "error", err)
			return
		}
		resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(payload))
		if err != nil {
			s.logger.Debug("analytics post failed", "error", err)
			return
		}
		resp.Body.Close()
	}()
}

func (s *service) NewStartupEvent(info StartupEventInfo) TrackEvent {
	return newEvent("server_startup", map[string]any{
		"version":        info.Version,
		"network":        info.Network,
		"tradingEnabled": info.TradingEnabled,
		"toolCount":      info.ToolCount,
	})
}

func (s *service) NewToolEvent(tool, outcome string) TrackEvent {
	return newEvent("tool_call", map[string]any{
		"tool":    tool,
		"outcome": outcome,
	})
}

func newEvent(name string, props map[string]any) TrackEvent {
	return TrackEvent{
		EventID:    uuid.NewString(),
		Name:       name,
		Properties: props,
		Timestamp:  time.Now().UTC(),
	}
}
