package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bybitmcp/internal/tools"
	"bybitmcp/internal/tools/account"
	"bybitmcp/internal/tools/market"
	"bybitmcp/internal/tools/position"
	"bybitmcp/internal/tools/trade"
)

// allToolDefs returns the complete catalog in listing order: market data,
// order management, account queries, positions. The dispatch registry is
// built from the same list, so registration and dispatch cannot diverge.
func allToolDefs() []tools.Definition {
	var defs []tools.Definition
	defs = append(defs, market.Definitions()...)
	defs = append(defs, trade.Definitions()...)
	defs = append(defs, account.Definitions()...)
	defs = append(defs, position.Definitions()...)
	return defs
}

// registerTools registers the visible tools with the MCP server. The registry
// has already applied the trading gate, so a deployment with trading disabled
// never advertises mutating tools at all. Dispatch re-checks the gate for
// callers that skip listing and call by name.
func (s *BybitMCPServer) registerTools() {
	visible := s.registry.Visible()
	serverTools := make([]server.ServerTool, 0, len(visible))
	for _, def := range visible {
		serverTools = append(serverTools, server.ServerTool{
			Tool:    def.MCPTool(),
			Handler: s.toolHandler(def.Name),
		})
	}
	s.MCPServer.AddTools(serverTools...)
}

// toolHandler adapts one catalog entry to the MCP handler signature. The
// returned handler never produces a Go error: every failure is folded into
// the response envelope so raw internals never leak to the client.
func (s *BybitMCPServer) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := s.registry.Dispatch(ctx, name, req.GetArguments())
		return result.MCPResult(), nil
	}
}
