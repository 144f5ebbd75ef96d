package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/ledger"
)

// openSchedule gives every day the standard 10:00-23:00 half-hour slots.
func openSchedule() map[string][]string {
	var slots []string
	for h := 10; h <= 23; h++ {
		slots = append(slots, time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04"))
		if h < 23 {
			slots = append(slots, time.Date(0, 1, 1, h, 30, 0, 0, time.UTC).Format("15:04"))
		}
	}
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	sched := make(map[string][]string, len(days))
	for _, d := range days {
		sched[d] = slots
	}
	return sched
}

func testDirectory() *directory.Directory {
	sched := openSchedule()
	return directory.New([]directory.Branch{
		{
			ID: 1, BranchName: "GoodFoods - Koramangala", City: "Bangalore", Locality: "Koramangala",
			FullAddress: "Koramangala, Bangalore", Cuisines: []string{"Italian", "North Indian"},
			Rating: 4.5, Capacity: 120,
			Features:       []string{"Pub Street", "Live Music", "Full Bar", "Late Night"},
			WeeklySchedule: sched,
		},
		{
			ID: 2, BranchName: "GoodFoods - Indiranagar", City: "Bangalore", Locality: "Indiranagar",
			FullAddress: "Indiranagar, Bangalore", Cuisines: []string{"Italian", "Continental"},
			Rating: 4.2, Capacity: 90,
			Features:       []string{"Garden Seating", "Outdoor Dining", "Pet Friendly"},
			WeeklySchedule: sched,
		},
		{
			ID: 3, BranchName: "GoodFoods - Bandra", City: "Mumbai", Locality: "Bandra",
			FullAddress: "Bandra, Mumbai", Cuisines: []string{"Asian Fusion"},
			Rating: 4.8, Capacity: 60,
			Features:       []string{"Sea View", "Outdoor Seating", "Full Bar"},
			WeeklySchedule: sched,
		},
		{
			ID: 4, BranchName: "GoodFoods - MG Road", City: "Bangalore", Locality: "MG Road",
			FullAddress: "MG Road, Bangalore", Cuisines: []string{"North Indian"},
			Rating: 4.0, Capacity: 200,
			Features:       []string{"Central Location", "Metro Access", "Rooftop"},
			WeeklySchedule: sched,
		},
		{
			ID: 5, BranchName: "GoodFoods - MG Road", City: "Kochi", Locality: "MG Road",
			FullAddress: "MG Road, Kochi", Cuisines: []string{"Continental"},
			Rating: 4.3, Capacity: 40,
			Features:       []string{"Waterfront View", "Outdoor Seating"},
			WeeklySchedule: sched,
		},
	})
}

// closedMondayDirectory clones testDirectory with branch 5 closed on Monday.
func closedMondayDirectory() *directory.Directory {
	branches := testDirectory().All()
	out := make([]directory.Branch, len(branches))
	copy(out, branches)
	sched := make(map[string][]string, 7)
	for day, slots := range out[4].WeeklySchedule {
		if day == "Monday" {
			continue
		}
		sched[day] = slots
	}
	out[4].WeeklySchedule = sched
	return directory.New(out)
}

func execute(t *testing.T, tool interface {
	Execute(ctx context.Context, params map[string]any) (string, error)
}, params map[string]any) string {
	t.Helper()
	out, err := tool.Execute(context.Background(), params)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	return out
}

func mustParams(t *testing.T, raw string) map[string]any {
	t.Helper()
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		t.Fatalf("parse params: %v", err)
	}
	return params
}

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(t.TempDir() + "/reservations.json")
}
