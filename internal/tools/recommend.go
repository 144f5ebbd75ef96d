package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goodfoods/goodfoods/internal/directory"
)

const maxRecommendations = 3

// RecommendationsTool scores branches against free-text preferences and
// returns the top matches. Scoring is keyword overlap plus a rating
// bonus; zero-score branches are never recommended.
type RecommendationsTool struct {
	dir *directory.Directory
}

func NewRecommendationsTool(dir *directory.Directory) *RecommendationsTool {
	return &RecommendationsTool{dir: dir}
}

func (t *RecommendationsTool) Name() string { return string(ToolGetRecommendations) }
func (t *RecommendationsTool) Description() string {
	return "Get intelligent branch recommendations based on user preferences."
}

func (t *RecommendationsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"preferences": {
				"type": "string",
				"description": "User preferences in natural language (e.g., 'romantic dinner with outdoor seating')"
			}
		},
		"required": ["preferences"]
	}`)
}

type scoredBranch struct {
	score  float64
	branch directory.Branch
}

func (t *RecommendationsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	preferences := stringParam(params, "preferences")
	keywords := strings.Fields(strings.ToLower(preferences))

	var scored []scoredBranch
	for _, branch := range t.dir.All() {
		score := scoreBranch(branch, keywords)
		if score > 0 {
			scored = append(scored, scoredBranch{score: score, branch: branch})
		}
	}

	// Stable sort keeps catalogue order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) == 0 {
		return "I couldn't find specific recommendations based on those preferences. Try searching for branches in your preferred city instead!", nil
	}

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}

	var sb strings.Builder
	sb.WriteString("Based on your preferences, I recommend these GoodFoods branches:\n\n")
	for rank, sc := range scored {
		fmt.Fprintf(&sb, "%d. **%s**\n", rank+1, sc.branch.BranchName)
		fmt.Fprintf(&sb, "   📍 %s\n", sc.branch.FullAddress)
		fmt.Fprintf(&sb, "   ⭐ %.1f rating | 💺 %d seats\n", sc.branch.Rating, sc.branch.Capacity)
		fmt.Fprintf(&sb, "   ✨ Highlights: %s\n\n", strings.Join(firstN(sc.branch.Features, 3), ", "))
	}

	return sb.String(), nil
}

// scoreBranch computes the relevance of one branch:
//   - +1 per keyword appearing anywhere in the branch's name, city,
//     locality, features, or cuisines
//   - +rating/5 as a quality bonus
//   - +0.5 per keyword that is a substring of any single feature
func scoreBranch(branch directory.Branch, keywords []string) float64 {
	searchable := strings.ToLower(strings.Join([]string{
		branch.BranchName,
		branch.City,
		branch.Locality,
		strings.Join(branch.Features, " "),
		strings.Join(branch.Cuisines, " "),
	}, " "))

	var score float64
	for _, kw := range keywords {
		if strings.Contains(searchable, kw) {
			score += 1
		}
	}

	score += branch.Rating / 5.0

	for _, kw := range keywords {
		for _, feature := range branch.Features {
			if strings.Contains(strings.ToLower(feature), kw) {
				score += 0.5
				break
			}
		}
	}

	return score
}
