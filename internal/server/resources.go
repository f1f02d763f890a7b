package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const catalogResourceURI = "bybit://tools/catalog"

// registerResources exposes a plain-text catalog resource so clients can see
// what this deployment offers without enumerating tools one by one.
func (s *BybitMCPServer) registerResources() {
	resource := mcp.NewResource(catalogResourceURI, "Tool catalog",
		mcp.WithResourceDescription("Tools exposed by this server, grouped by category, reflecting the current trading gate"),
		mcp.WithMIMEType("text/plain"),
	)
	s.MCPServer.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      catalogResourceURI,
				MIMEType: "text/plain",
				Text:     s.catalogText(),
			},
		}, nil
	})
}

func (s *BybitMCPServer) catalogText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "network: %s\n", s.config.Network)
	fmt.Fprintf(&b, "trading enabled: %t\n\n", s.config.TradingEnabled)
	current := ""
	for _, def := range s.registry.Visible() {
		if def.Category != current {
			current = def.Category
			fmt.Fprintf(&b, "[%s]\n", current)
		}
		marker := ""
		if def.Trading {
			marker = " (trading)"
		}
		fmt.Fprintf(&b, "  %s%s\n", def.Name, marker)
	}
	return b.String()
}
