// Package schema contains the core contracts shared across goodfoods packages.
// Concrete implementations live in their respective packages; this package is the
// single canonical source of truth for every interface definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all LLM-callable tools must satisfy.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ToolResult is the envelope every tool invocation resolves to.
// Failures travel as data, never as a raised error, so one bad tool
// call cannot abort the conversation turn.
type ToolResult struct {
	Content string
	IsError bool
}

func NewToolResult(content string) ToolResult {
	return ToolResult{Content: content}
}

func NewToolError(content string) ToolResult {
	return ToolResult{Content: content, IsError: true}
}
