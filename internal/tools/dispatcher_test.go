package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

type stubTool struct {
	name    string
	params  string
	execute func(ctx context.Context, params map[string]any) (string, error)
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return "stub" }
func (s stubTool) Parameters() json.RawMessage {
	if s.params == "" {
		return json.RawMessage(`{"type": "object", "properties": {}}`)
	}
	return json.RawMessage(s.params)
}
func (s stubTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return s.execute(ctx, params)
}

func newTestDispatcher(t *testing.T, ts ...stubTool) *Dispatcher {
	t.Helper()
	b := NewRegistryBuilder()
	for _, tool := range ts {
		b.WithTool(tool)
	}
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	d, err := NewDispatcher(reg)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func TestDispatcher_UnknownTool(t *testing.T) {
	d := newTestDispatcher(t)

	result := d.Invoke(context.Background(), "nope", nil)
	if !result.IsError {
		t.Fatal("expected error envelope for unknown tool")
	}
	if result.Content != "Unknown tool: nope" {
		t.Errorf("unexpected message: %q", result.Content)
	}
}

func TestDispatcher_CleansNullAndEmptyArguments(t *testing.T) {
	var seen map[string]any
	d := newTestDispatcher(t, stubTool{
		name: "echo",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			seen = params
			return "ok", nil
		},
	})

	result := d.Invoke(context.Background(), "echo", map[string]any{
		"keep":  "value",
		"zero":  float64(0),
		"null":  nil,
		"empty": "",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content)
	}
	if _, ok := seen["null"]; ok {
		t.Error("null argument should have been dropped")
	}
	if _, ok := seen["empty"]; ok {
		t.Error("empty-string argument should have been dropped")
	}
	if seen["keep"] != "value" {
		t.Error("non-empty argument should have been kept")
	}
	if seen["zero"] != float64(0) {
		t.Error("numeric zero must survive cleaning")
	}
}

func TestDispatcher_SchemaRejectsBadArguments(t *testing.T) {
	d := newTestDispatcher(t, stubTool{
		name:   "strict",
		params: `{"type": "object", "properties": {"n": {"type": "integer"}}, "required": ["n"]}`,
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			t.Fatal("execute must not run on invalid arguments")
			return "", nil
		},
	})

	result := d.Invoke(context.Background(), "strict", map[string]any{"n": "five"})
	if !result.IsError {
		t.Fatal("expected error envelope for schema violation")
	}
	if !strings.Contains(result.Content, "Invalid arguments for tool 'strict'") {
		t.Errorf("unexpected message: %q", result.Content)
	}

	// Required key removed by cleaning also fails validation.
	result = d.Invoke(context.Background(), "strict", map[string]any{"n": nil})
	if !result.IsError {
		t.Fatal("expected error envelope when required argument is null")
	}
}

func TestDispatcher_ExecutionErrorBecomesEnvelope(t *testing.T) {
	d := newTestDispatcher(t, stubTool{
		name: "fail",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			return "", context.DeadlineExceeded
		},
	})

	result := d.Invoke(context.Background(), "fail", nil)
	if !result.IsError {
		t.Fatal("expected error envelope")
	}
	if !strings.Contains(result.Content, "Error executing tool 'fail'") {
		t.Errorf("unexpected message: %q", result.Content)
	}
}

func TestDispatcher_PanicBecomesEnvelope(t *testing.T) {
	d := newTestDispatcher(t, stubTool{
		name: "boom",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			panic("kaboom")
		},
	})

	result := d.Invoke(context.Background(), "boom", nil)
	if !result.IsError {
		t.Fatal("expected error envelope for panic")
	}
	if !strings.Contains(result.Content, "kaboom") {
		t.Errorf("expected panic value in message, got: %q", result.Content)
	}
}

func TestDispatcher_Success(t *testing.T) {
	d := newTestDispatcher(t, stubTool{
		name: "greet",
		execute: func(ctx context.Context, params map[string]any) (string, error) {
			return "hello", nil
		},
	})

	result := d.Invoke(context.Background(), "greet", nil)
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content)
	}
	if result.Content != "hello" {
		t.Errorf("expected tool output, got %q", result.Content)
	}
}
