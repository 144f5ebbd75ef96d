package directory

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	d := Load("/nonexistent/path/branches.json")
	if d.Len() != 0 {
		t.Fatalf("expected empty directory for missing file, got %d branches", d.Len())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "branches.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	d := Load(path)
	if d.Len() != 0 {
		t.Fatalf("expected empty directory for invalid JSON, got %d branches", d.Len())
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "branches.json")

	branches := Seed(rand.New(rand.NewSource(1)))
	if err := Save(path, branches); err != nil {
		t.Fatalf("save: %v", err)
	}

	d := Load(path)
	if d.Len() != len(branches) {
		t.Fatalf("expected %d branches after reload, got %d", len(branches), d.Len())
	}

	b, ok := d.ByID(1)
	if !ok {
		t.Fatal("expected branch 1 to exist")
	}
	if b.BranchName != branches[0].BranchName {
		t.Errorf("expected branch name %q, got %q", branches[0].BranchName, b.BranchName)
	}
}

func TestSeed_Catalogue(t *testing.T) {
	branches := Seed(rand.New(rand.NewSource(42)))

	if len(branches) < 50 {
		t.Fatalf("expected at least 50 branches, got %d", len(branches))
	}

	for _, b := range branches {
		if b.Rating < 4.0 || b.Rating > 4.8 {
			t.Errorf("branch %d rating %.1f outside 4.0-4.8", b.ID, b.Rating)
		}
		if b.Capacity < 30 || b.Capacity > 200 {
			t.Errorf("branch %d capacity %d outside 30-200", b.ID, b.Capacity)
		}
		slots := b.SlotsFor("Monday")
		if len(slots) == 0 {
			t.Errorf("branch %d has no Monday slots", b.ID)
		}
		if len(slots) > 0 && (slots[0] != "10:00" || slots[len(slots)-1] != "23:00") {
			t.Errorf("branch %d schedule spans %s-%s, want 10:00-23:00", b.ID, slots[0], slots[len(slots)-1])
		}
		for _, want := range []string{"Professional Staff", "Clean & Hygienic", "Card Payment"} {
			found := false
			for _, f := range b.Features {
				if f == want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("branch %d missing common feature %q", b.ID, want)
			}
		}
	}

	// IDs are sequential from 1.
	for i, b := range branches {
		if b.ID != i+1 {
			t.Fatalf("expected sequential IDs, branch at index %d has ID %d", i, b.ID)
		}
	}
}

func TestDirectory_Cities(t *testing.T) {
	d := New([]Branch{
		{ID: 1, City: "Delhi"},
		{ID: 2, City: "Mumbai"},
		{ID: 3, City: "Delhi"},
	})

	cities := d.Cities()
	if len(cities) != 2 {
		t.Fatalf("expected 2 distinct cities, got %v", cities)
	}
	if cities[0] != "Delhi" || cities[1] != "Mumbai" {
		t.Errorf("expected sorted cities [Delhi Mumbai], got %v", cities)
	}
}
