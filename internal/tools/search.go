package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goodfoods/goodfoods/internal/directory"
)

const maxSearchResults = 5

// SearchBranchesTool filters the branch catalogue by city, locality,
// features, rating, and capacity. Every filter is optional; calling it
// with no arguments lists the first branches of the catalogue.
type SearchBranchesTool struct {
	dir *directory.Directory
}

func NewSearchBranchesTool(dir *directory.Directory) *SearchBranchesTool {
	return &SearchBranchesTool{dir: dir}
}

func (t *SearchBranchesTool) Name() string { return string(ToolSearchBranches) }
func (t *SearchBranchesTool) Description() string {
	return "Search for GoodFoods branch locations based on filters. All parameters are optional."
}

func (t *SearchBranchesTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"city": {
				"type": ["string", "null"],
				"description": "City name to filter branches"
			},
			"locality": {
				"type": ["string", "null"],
				"description": "Locality or neighborhood name"
			},
			"features": {
				"type": ["array", "null"],
				"items": {"type": "string"},
				"description": "List of required features (e.g., ['Rooftop Seating', 'Live Music'])"
			},
			"min_rating": {
				"type": ["number", "null"],
				"description": "Minimum rating filter (1.0-5.0)"
			},
			"min_capacity": {
				"type": ["integer", "null"],
				"description": "Minimum seating capacity required"
			}
		},
		"required": []
	}`)
}

func (t *SearchBranchesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	city := stringParam(params, "city")
	locality := stringParam(params, "locality")
	features := stringSliceParam(params, "features")
	minRating := floatParam(params, "min_rating")
	minCapacity := intParam(params, "min_capacity")

	var results []directory.Branch
	for _, branch := range t.dir.All() {
		if city != "" && !strings.Contains(strings.ToLower(branch.City), strings.ToLower(city)) {
			continue
		}
		if locality != "" && !strings.Contains(strings.ToLower(branch.Locality), strings.ToLower(locality)) {
			continue
		}
		if !hasAllFeatures(branch, features) {
			continue
		}
		if minRating > 0 && branch.Rating < minRating {
			continue
		}
		if minCapacity > 0 && branch.Capacity < minCapacity {
			continue
		}
		results = append(results, branch)
	}

	if len(results) == 0 {
		return "No GoodFoods branches found matching your criteria. Try broadening your search.", nil
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d GoodFoods branch(es):\n\n", len(results))
	for _, branch := range results {
		fmt.Fprintf(&sb, "📍 **%s** (ID: %d)\n", branch.BranchName, branch.ID)
		fmt.Fprintf(&sb, "   Location: %s\n", branch.FullAddress)
		fmt.Fprintf(&sb, "   Rating: %.1f⭐ | Capacity: %d seats\n", branch.Rating, branch.Capacity)
		fmt.Fprintf(&sb, "   Features: %s\n", strings.Join(firstN(branch.Features, 5), ", "))
		fmt.Fprintf(&sb, "   Cuisines: %s\n\n", strings.Join(branch.Cuisines, ", "))
	}

	return sb.String(), nil
}

// hasAllFeatures reports whether the branch carries every requested
// feature (case-insensitive exact match).
func hasAllFeatures(branch directory.Branch, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(branch.Features))
	for _, f := range branch.Features {
		have[strings.ToLower(f)] = true
	}
	for _, req := range required {
		if !have[strings.ToLower(req)] {
			return false
		}
	}
	return true
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
