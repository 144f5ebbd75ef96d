package tools

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"

	"github.com/goodfoods/goodfoods/internal/schema"
)

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to validate every tool's parameter schema and produce an
// immutable Registry ready for use.
type RegistryBuilder struct {
	tools map[string]schema.Tool
	order []string
	errs  []error
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
// Registering two tools with the same name is a construction error,
// reported by Build.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	if _, dup := b.tools[tool.Name()]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate tool name %q", tool.Name()))
		return b
	}
	b.tools[tool.Name()] = tool
	b.order = append(b.order, tool.Name())

	return b
}

// Build validates the accumulated tools and produces an immutable Registry.
// Each tool's parameter schema must compile as JSON Schema and every
// required property must be declared.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	compiler := jsonschema.NewCompiler()
	for _, name := range b.order {
		raw := b.tools[name].Parameters()
		if _, err := compiler.Compile([]byte(raw)); err != nil {
			return nil, fmt.Errorf("tool %q: compile parameter schema: %w", name, err)
		}
		if err := checkRequiredDeclared(raw); err != nil {
			return nil, fmt.Errorf("tool %q: %w", name, err)
		}
	}

	tools := make(map[string]schema.Tool, len(b.tools))
	for k, v := range b.tools {
		tools[k] = v
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	return &Registry{tools: tools, order: order}, nil
}

// checkRequiredDeclared verifies required ⊆ properties so a tool cannot
// demand a parameter the model was never told about.
func checkRequiredDeclared(raw json.RawMessage) error {
	var s struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("parse parameter schema: %w", err)
	}
	for _, req := range s.Required {
		if _, ok := s.Properties[req]; !ok {
			return fmt.Errorf("required property %q not declared in properties", req)
		}
	}
	return nil
}
