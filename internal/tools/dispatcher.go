package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaptinlin/jsonschema"

	"github.com/goodfoods/goodfoods/internal/schema"
)

// Dispatcher routes tool calls from the LLM to registered tools.
//
// Every invocation resolves to a ToolResult: unknown tools, invalid
// arguments, execution errors, and panics all come back as error
// envelopes, never as a Go error, so the conversation loop can feed the
// failure text straight back to the model.
type Dispatcher struct {
	registry *Registry
	schemas  map[string]*jsonschema.Schema
}

// NewDispatcher compiles each registered tool's parameter schema for
// argument validation at call time.
func NewDispatcher(registry *Registry) (*Dispatcher, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema)
	for _, name := range registry.AllTools().Names() {
		compiled, err := compiler.Compile([]byte(registry.GetTool(ToolName(name)).Parameters()))
		if err != nil {
			return nil, fmt.Errorf("tool %q: compile parameter schema: %w", name, err)
		}
		schemas[name] = compiled
	}
	return &Dispatcher{registry: registry, schemas: schemas}, nil
}

// Invoke executes the named tool with the given arguments.
func (d *Dispatcher) Invoke(ctx context.Context, name string, arguments map[string]any) (result schema.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panicked", "tool", name, "panic", r)
			result = schema.NewToolError(fmt.Sprintf("Error executing tool '%s': %v", name, r))
		}
	}()

	tool := d.registry.GetTool(ToolName(name))
	if tool == nil {
		return schema.NewToolError(fmt.Sprintf("Unknown tool: %s", name))
	}

	args := CleanArguments(arguments)

	if compiled := d.schemas[name]; compiled != nil {
		if vr := compiled.Validate(args); !vr.IsValid() {
			return schema.NewToolError(fmt.Sprintf("Invalid arguments for tool '%s': %v", name, vr.Error()))
		}
	}

	text, err := tool.Execute(ctx, args)
	if err != nil {
		return schema.NewToolError(fmt.Sprintf("Error executing tool '%s': %s", name, err))
	}
	return schema.NewToolResult(text)
}

// CleanArguments drops null and empty-string values before dispatch.
// Models routinely send `"city": null` or `"occasion": ""` for optional
// parameters they chose not to fill; tools should see those as absent.
func CleanArguments(arguments map[string]any) map[string]any {
	cleaned := make(map[string]any, len(arguments))
	for k, v := range arguments {
		if v == nil || v == "" {
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}
