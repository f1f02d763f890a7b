// Package server wires the tool catalog, dispatcher, and exchange client
// into an MCP server served over stdio.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"bybitmcp/internal/analytics"
	"bybitmcp/internal/bybit"
	"bybitmcp/internal/config"
	"bybitmcp/internal/dispatch"
	"bybitmcp/internal/tools"
)

const (
	serverName = "bybit-mcp"
	// Version is stamped into the MCP handshake and startup telemetry.
	Version = "1.0.0"
)

// BybitMCPServer holds the assembled server and its collaborators.
type BybitMCPServer struct {
	MCPServer *server.MCPServer

	config    *config.Config
	logger    *slog.Logger
	registry  *dispatch.Registry
	anService analytics.Service
}

// NewBybitMCPServer builds the full stack from configuration: exchange
// client, telemetry, dispatch registry, MCP registration.
func NewBybitMCPServer(cfg *config.Config, logger *slog.Logger) (*BybitMCPServer, error) {
	client := bybit.NewClient(bybit.Config{
		Network:   cfg.Network,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
	})
	anService := analytics.NewService(http.DefaultClient, logger)
	return newWithDeps(cfg, logger, tools.ToolDependencies{
		Exchange:         client,
		AnalyticsService: anService,
	})
}

func newWithDeps(cfg *config.Config, logger *slog.Logger, deps tools.ToolDependencies) (*BybitMCPServer, error) {
	registry, err := dispatch.NewRegistry(allToolDefs(), deps, dispatch.Options{
		TradingEnabled: cfg.TradingEnabled,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building tool registry: %w", err)
	}

	s := &BybitMCPServer{
		MCPServer: server.NewMCPServer(serverName, Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
		config:    cfg,
		logger:    logger,
		registry:  registry,
		anService: deps.AnalyticsService,
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Start serves MCP over stdio until the client disconnects.
func (s *BybitMCPServer) Start() error {
	visible := s.registry.Visible()
	s.logger.Info("starting server",
		"network", string(s.config.Network),
		"tradingEnabled", s.config.TradingEnabled,
		"tools", len(visible),
	)
	if s.anService != nil {
		s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
			Version:        Version,
			Network:        string(s.config.Network),
			TradingEnabled: s.config.TradingEnabled,
			ToolCount:      len(visible),
		}))
	}
	return server.ServeStdio(s.MCPServer)
}
