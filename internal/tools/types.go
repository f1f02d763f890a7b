package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"

	"bybitmcp/internal/analytics"
	"bybitmcp/internal/bybit"
	"bybitmcp/internal/schema"
)

// ToolDependencies contains all dependencies needed by tool bindings.
type ToolDependencies struct {
	Exchange         bybit.Exchange
	AnalyticsService analytics.Service
}

// Tool categories, used for grouping in listings and telemetry.
const (
	CategoryMarket   = "market"
	CategoryTrade    = "trade"
	CategoryAccount  = "account"
	CategoryPosition = "position"
)

// ErrBadBinding marks a decode failure between validated arguments and the
// typed exchange call. Arguments that pass validation must always decode, so
// hitting this is a catalog bug, not a caller or upstream problem.
var ErrBadBinding = errors.New("tool binding rejected validated arguments")

// InvokeFunc executes one exchange operation with already-validated,
// normalized arguments.
type InvokeFunc func(ctx context.Context, deps ToolDependencies, args map[string]any) (json.RawMessage, error)

// Definition binds one catalog tool to its argument schema and its single
// exchange operation.
type Definition struct {
	Name        string
	Description string
	Category    string
	// Trading marks operations that mutate orders, positions, or margin.
	// They are hidden and refused unless trading is explicitly enabled.
	Trading bool
	Schema  schema.Object
	Invoke  InvokeFunc
}

// MCPTool renders the definition as an MCP tool declaration.
func (d Definition) MCPTool() mcp.Tool {
	js, required := d.Schema.JSONSchema()
	tool := mcp.NewTool(d.Name,
		mcp.WithDescription(d.Description),
		mcp.WithTitleAnnotation(d.Name),
		mcp.WithReadOnlyHintAnnotation(!d.Trading),
		mcp.WithDestructiveHintAnnotation(d.Trading),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: js,
		Required:   required,
	}
	return tool
}

// Decode maps normalized arguments onto a typed params struct. The schema
// guarantees shape and types, so any failure here means the schema and the
// struct disagree.
func Decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: false,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadBinding, err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBinding, err)
	}
	return nil
}
