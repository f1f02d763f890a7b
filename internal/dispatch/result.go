// Package dispatch routes validated tool calls to their exchange operations
// and folds every outcome into a single response envelope.
package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ErrorKind classifies call failures for the caller. The set is closed: every
// failure path in Dispatch maps to exactly one of these.
type ErrorKind string

const (
	// KindValidation means the arguments were rejected before any network
	// activity. Never retryable as-is.
	KindValidation ErrorKind = "VALIDATION"
	// KindDisabled means the tool exists but is switched off in this
	// deployment. Retrying cannot help.
	KindDisabled ErrorKind = "DISABLED_CAPABILITY"
	// KindUpstream means the exchange refused or failed the request.
	KindUpstream ErrorKind = "UPSTREAM"
	// KindInternal means the engine itself failed. Always a bug.
	KindInternal ErrorKind = "INTERNAL"
)

// ErrorDetail is the failure half of the envelope.
type ErrorDetail struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	// Fields names the offending parameters for validation failures.
	Fields []string `json:"fields,omitempty"`
}

// CallResult is the uniform envelope for every tool call. Exactly one of
// Payload and Err is set.
type CallResult struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Err     *ErrorDetail    `json:"error,omitempty"`
}

func okResult(payload json.RawMessage) CallResult {
	return CallResult{Status: "ok", Payload: payload}
}

func errResult(detail ErrorDetail) CallResult {
	return CallResult{Status: "error", Err: &detail}
}

// MCPResult renders the envelope as an MCP tool result. Failures use the
// protocol's error flag so clients surface them, but the body is still the
// structured envelope rather than a bare message.
func (r CallResult) MCPResult() *mcp.CallToolResult {
	body, err := json.Marshal(r)
	if err != nil {
		// The envelope is built from plain structs and raw JSON, so this
		// cannot happen with a healthy payload.
		fallback := fmt.Sprintf(`{"status":"error","error":{"kind":"INTERNAL","message":"envelope marshal: %s","retryable":false}}`, err)
		return mcp.NewToolResultError(fallback)
	}
	if r.Status == "ok" {
		return mcp.NewToolResultText(string(body))
	}
	return mcp.NewToolResultError(string(body))
}
