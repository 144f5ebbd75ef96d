package tools

import (
	"strings"
	"testing"

	"github.com/goodfoods/goodfoods/internal/directory"
)

func TestRecommend_KeywordMatchRanksFirst(t *testing.T) {
	tool := NewRecommendationsTool(testDirectory())
	out := execute(t, tool, map[string]any{"preferences": "romantic sea view dinner"})

	lines := strings.Split(out, "\n")
	var first string
	for _, line := range lines {
		if strings.HasPrefix(line, "1. ") {
			first = line
			break
		}
	}
	if !strings.Contains(first, "Bandra") {
		t.Errorf("expected the Sea View branch ranked first, got %q in:\n%s", first, out)
	}
}

func TestRecommend_AtMostThree(t *testing.T) {
	tool := NewRecommendationsTool(testDirectory())
	out := execute(t, tool, map[string]any{"preferences": "goodfoods"})

	if !strings.Contains(out, "1. ") || !strings.Contains(out, "3. ") {
		t.Errorf("expected three recommendations, got:\n%s", out)
	}
	if strings.Contains(out, "4. ") {
		t.Errorf("expected at most three recommendations, got:\n%s", out)
	}
}

func TestRecommend_FeatureBonusBreaksRatingTies(t *testing.T) {
	sched := openSchedule()
	d := directory.New([]directory.Branch{
		{ID: 1, BranchName: "GoodFoods - A", City: "Delhi", Locality: "A",
			Rating: 4.0, Capacity: 100, Features: []string{"AC"}, WeeklySchedule: sched},
		{ID: 2, BranchName: "GoodFoods - B", City: "Delhi", Locality: "B",
			Rating: 4.0, Capacity: 100, Features: []string{"Rooftop Seating"}, WeeklySchedule: sched},
	})
	tool := NewRecommendationsTool(d)

	out := execute(t, tool, map[string]any{"preferences": "rooftop"})
	idxB := strings.Index(out, "GoodFoods - B")
	idxA := strings.Index(out, "GoodFoods - A")
	if idxB == -1 || (idxA != -1 && idxB > idxA) {
		t.Errorf("expected the rooftop branch ranked above the plain one:\n%s", out)
	}
}

func TestRecommend_StableOrderForEqualScores(t *testing.T) {
	sched := openSchedule()
	d := directory.New([]directory.Branch{
		{ID: 1, BranchName: "GoodFoods - First", City: "Delhi", Locality: "X", Rating: 4.0, WeeklySchedule: sched},
		{ID: 2, BranchName: "GoodFoods - Second", City: "Delhi", Locality: "Y", Rating: 4.0, WeeklySchedule: sched},
		{ID: 3, BranchName: "GoodFoods - Third", City: "Delhi", Locality: "Z", Rating: 4.0, WeeklySchedule: sched},
	})
	tool := NewRecommendationsTool(d)

	out := execute(t, tool, map[string]any{"preferences": "delhi"})
	i1 := strings.Index(out, "GoodFoods - First")
	i2 := strings.Index(out, "GoodFoods - Second")
	i3 := strings.Index(out, "GoodFoods - Third")
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("expected catalogue order preserved between equal scores:\n%s", out)
	}
}

func TestRecommend_EmptyCatalogue(t *testing.T) {
	tool := NewRecommendationsTool(directory.New(nil))
	out := execute(t, tool, map[string]any{"preferences": "anything"})

	if !strings.Contains(out, "couldn't find specific recommendations") {
		t.Errorf("expected the fallback message, got:\n%s", out)
	}
}

func TestRecommend_RatingBonusKeepsUnmatchedBranches(t *testing.T) {
	// No keyword hits anywhere: the rating bonus alone still ranks
	// branches, best rated first.
	tool := NewRecommendationsTool(testDirectory())
	out := execute(t, tool, map[string]any{"preferences": "zzzz qqqq"})

	if !strings.Contains(out, "I recommend these GoodFoods branches") {
		t.Fatalf("expected recommendations from rating bonus alone, got:\n%s", out)
	}
	var first string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "1. ") {
			first = line
			break
		}
	}
	if !strings.Contains(first, "Bandra") {
		t.Errorf("expected the best-rated branch first, got %q", first)
	}
}
