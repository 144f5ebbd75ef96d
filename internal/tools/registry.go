package tools

import (
	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolSearchBranches     ToolName = "search_branches"
	ToolGetRecommendations ToolName = "get_recommendations"
	ToolMakeReservation    ToolName = "make_reservation"
)

// NewDefaultRegistry wires the three reservation tools against the
// given catalogue and ledger.
func NewDefaultRegistry(dir *directory.Directory, store ReservationStore) (*Registry, error) {
	return NewRegistryBuilder().
		WithTool(NewSearchBranchesTool(dir)).
		WithTool(NewRecommendationsTool(dir)).
		WithTool(NewReservationTool(dir, store)).
		Build()
}

// Registry holds a set of named tools and exposes them for execution.
// Registration order is preserved so tool definitions reach the LLM in
// a stable order.
type Registry struct {
	tools map[string]schema.Tool
	order []string
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name ToolName) schema.Tool {
	return r.tools[string(name)]
}

func (r *Registry) AllTools() *ToolList {
	list := &ToolList{
		tools: make(map[string]schema.Tool, len(r.tools)),
		order: make([]string, len(r.order)),
	}
	for k, t := range r.tools {
		list.tools[k] = t
	}
	copy(list.order, r.order)
	return list
}
