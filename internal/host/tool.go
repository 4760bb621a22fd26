package host

import (
	"context"
	"encoding/json"
)

// ToolResult is the result of an agent tool invocation.
type ToolResult struct {
	// Content holds the tool output payload.
	Content string
	// IsError reports whether the tool failed.
	IsError bool
}

// Tool defines a callable agent tool served through the host.
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]any
	Run(ctx context.Context, input json.RawMessage) (ToolResult, error)
}

// toolWireResult is the envelope the host serves to agent callers.
type toolWireResult struct {
	Content []toolWireContent `json:"content"`
	IsError bool              `json:"isError,omitempty"`
}

// toolWireContent is a single content block in a wire result.
type toolWireContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MarshalToolResult encodes a ToolResult into the wire envelope served to
// agents: a content list of text blocks plus an optional isError flag.
func MarshalToolResult(result ToolResult) (string, error) {
	wire := toolWireResult{
		Content: []toolWireContent{{Type: "text", Text: result.Content}},
		IsError: result.IsError,
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
