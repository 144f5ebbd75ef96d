package directory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

// Directory is an in-memory, read-only view of the branch catalogue.
type Directory struct {
	branches []Branch
	byID     map[int]Branch
}

// Load reads the branch catalogue from path. A missing or unreadable
// file is logged and yields an empty directory rather than an error:
// the assistant still runs, it just has nothing to offer.
func Load(path string) *Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("branch catalogue not found, starting empty", "path", path, "error", err)
		return New(nil)
	}

	var branches []Branch
	if err := json.Unmarshal(data, &branches); err != nil {
		slog.Warn("branch catalogue unreadable, starting empty", "path", path, "error", err)
		return New(nil)
	}

	slog.Info("branch catalogue loaded", "path", path, "branches", len(branches))
	return New(branches)
}

// New builds a Directory from the given branches.
func New(branches []Branch) *Directory {
	byID := make(map[int]Branch, len(branches))
	for _, b := range branches {
		byID[b.ID] = b
	}
	return &Directory{branches: branches, byID: byID}
}

// All returns every branch in catalogue order.
func (d *Directory) All() []Branch {
	return d.branches
}

// ByID looks up a branch by its numeric identifier.
func (d *Directory) ByID(id int) (Branch, bool) {
	b, ok := d.byID[id]
	return b, ok
}

// Len returns the number of branches in the catalogue.
func (d *Directory) Len() int { return len(d.branches) }

// Cities returns the distinct city names, sorted.
func (d *Directory) Cities() []string {
	seen := make(map[string]bool)
	for _, b := range d.branches {
		seen[b.City] = true
	}
	cities := make([]string, 0, len(seen))
	for c := range seen {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}

// Save writes the branch catalogue to path.
func Save(path string, branches []Branch) error {
	data, err := json.MarshalIndent(branches, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal branch catalogue: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write branch catalogue: %w", err)
	}
	return nil
}
