package tools

import (
	"context"
	"strings"
	"testing"
)

func buildDefaultRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewDefaultRegistry(testDirectory(), testLedger(t))
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func TestRegistry_DefaultTools(t *testing.T) {
	reg := buildDefaultRegistry(t)

	for _, name := range []ToolName{ToolSearchBranches, ToolGetRecommendations, ToolMakeReservation} {
		if reg.GetTool(name) == nil {
			t.Errorf("expected tool %q to be registered", name)
		}
	}
	if reg.GetTool("web_search") != nil {
		t.Error("unexpected tool registered")
	}
}

func TestRegistry_DefinitionsOrderAndShape(t *testing.T) {
	reg := buildDefaultRegistry(t)

	defs := reg.AllTools().Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}

	wantOrder := []string{"search_branches", "get_recommendations", "make_reservation"}
	for i, def := range defs {
		if def["type"] != "function" {
			t.Errorf("definition %d: expected type function, got %v", i, def["type"])
		}
		fn, ok := def["function"].(map[string]any)
		if !ok {
			t.Fatalf("definition %d: missing function block", i)
		}
		if fn["name"] != wantOrder[i] {
			t.Errorf("definition %d: expected %q, got %v", i, wantOrder[i], fn["name"])
		}
		params, ok := fn["parameters"].(map[string]any)
		if !ok {
			t.Fatalf("definition %d: parameters not an object", i)
		}
		if params["type"] != "object" {
			t.Errorf("definition %d: expected object schema, got %v", i, params["type"])
		}
	}
}

func TestRegistryBuilder_DuplicateName(t *testing.T) {
	dup := stubTool{name: "twin", execute: func(ctx context.Context, p map[string]any) (string, error) { return "", nil }}

	_, err := NewRegistryBuilder().WithTool(dup).WithTool(dup).Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate tool name") {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}

func TestRegistryBuilder_RequiredMustBeDeclared(t *testing.T) {
	bad := stubTool{
		name:   "bad",
		params: `{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["missing"]}`,
		execute: func(ctx context.Context, p map[string]any) (string, error) {
			return "", nil
		},
	}

	_, err := NewRegistryBuilder().WithTool(bad).Build()
	if err == nil || !strings.Contains(err.Error(), "not declared in properties") {
		t.Fatalf("expected required-declaration error, got %v", err)
	}
}

func TestRegistryBuilder_InvalidSchema(t *testing.T) {
	bad := stubTool{
		name:   "broken",
		params: `{"type": [42]}`,
		execute: func(ctx context.Context, p map[string]any) (string, error) {
			return "", nil
		},
	}

	_, err := NewRegistryBuilder().WithTool(bad).Build()
	if err == nil {
		t.Fatal("expected schema compile error")
	}
}
