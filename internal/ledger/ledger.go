// Package ledger is the append-only reservation store. Reservations are
// kept as a JSON array on disk so the file stays greppable and hand-auditable.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Reservation is one confirmed booking. Field tags match the on-disk
// ledger format.
type Reservation struct {
	ReservationID  string `json:"reservation_id"`
	CustomerName   string `json:"customer_name"`
	CustomerPhone  string `json:"customer_phone"`
	Occasion       string `json:"occasion"`
	BranchID       int    `json:"branch_id"`
	BranchName     string `json:"branch_name"`
	BranchLocation string `json:"branch_location"`
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	TableNumber    int    `json:"table_number"`
	CreatedAt      string `json:"created_at"`
	Status         string `json:"status"`
}

// Ledger appends reservations to a JSON file. All operations are
// serialised by an internal mutex so concurrent turns cannot interleave
// a read-modify-write.
type Ledger struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Append adds a reservation to the ledger. Existing entries are never
// modified or removed.
func (l *Ledger) Append(r Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	reservations, err := l.load()
	if err != nil {
		return err
	}
	reservations = append(reservations, r)
	return l.save(reservations)
}

// Get retrieves a reservation by its ID.
func (l *Ledger) Get(reservationID string) (Reservation, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	reservations, err := l.load()
	if err != nil {
		return Reservation{}, false, err
	}
	for _, r := range reservations {
		if r.ReservationID == reservationID {
			return r, true, nil
		}
	}
	return Reservation{}, false, nil
}

// List returns all reservations in insertion order.
func (l *Ledger) List() ([]Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// load reads the ledger file. A missing file is an empty ledger.
func (l *Ledger) load() ([]Reservation, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var reservations []Reservation
	if err := json.Unmarshal(data, &reservations); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	return reservations, nil
}

func (l *Ledger) save(reservations []Reservation) error {
	data, err := json.MarshalIndent(reservations, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
