package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/ledger"
)

// ReservationStore is the slice of the ledger the reservation tool needs.
type ReservationStore interface {
	Append(r ledger.Reservation) error
}

// ReservationTool books a table at a branch. Branch resolution accepts
// an exact ID or a fuzzy name; every precondition failure returns
// guidance text the model can relay to the guest.
//
// A ledger write failure is logged and swallowed: the guest already got
// a table, losing the audit record must not unconfirm the booking.
type ReservationTool struct {
	dir   *directory.Directory
	store ReservationStore
	now   func() time.Time
	rng   *rand.Rand
}

func NewReservationTool(dir *directory.Directory, store ReservationStore) *ReservationTool {
	return &ReservationTool{
		dir:   dir,
		store: store,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock overrides the wall clock, for tests.
func (t *ReservationTool) WithClock(now func() time.Time) *ReservationTool {
	t.now = now
	return t
}

func (t *ReservationTool) Name() string { return string(ToolMakeReservation) }
func (t *ReservationTool) Description() string {
	return "Make a reservation at a specific GoodFoods branch. Requires customer contact details."
}

func (t *ReservationTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"branch_id": {
				"type": ["integer", "null"],
				"description": "Unique branch ID (optional if branch_name is provided)"
			},
			"branch_name": {
				"type": ["string", "null"],
				"description": "Branch name including location (e.g., 'GoodFoods - Koramangala')"
			},
			"city": {
				"type": ["string", "null"],
				"description": "City name (helpful when using branch_name)"
			},
			"date": {
				"type": "string",
				"description": "Reservation date in YYYY-MM-DD format"
			},
			"time": {
				"type": "string",
				"description": "Reservation time in HH:MM format (24-hour)"
			},
			"party_size": {
				"type": "integer",
				"description": "Number of people in the party",
				"minimum": 1,
				"maximum": 20
			},
			"customer_name": {
				"type": ["string", "null"],
				"description": "Customer's full name"
			},
			"customer_phone": {
				"type": ["string", "null"],
				"description": "Customer's contact phone number"
			},
			"occasion": {
				"type": ["string", "null"],
				"description": "Occasion for the reservation (birthday, anniversary, etc.)"
			}
		},
		"required": ["date", "time", "party_size"]
	}`)
}

func (t *ReservationTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	date := stringParam(params, "date")
	timeSlot := stringParam(params, "time")
	partySize := intParam(params, "party_size")
	branchName := stringParam(params, "branch_name")
	city := stringParam(params, "city")
	customerName := stringParam(params, "customer_name")
	customerPhone := stringParam(params, "customer_phone")
	occasion := stringParam(params, "occasion")

	branch, errText := t.resolveBranch(intParam(params, "branch_id"), branchName, city)
	if errText != "" {
		return errText, nil
	}

	reservationDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "❌ Invalid date format. Please use YYYY-MM-DD (e.g., 2025-12-25)", nil
	}
	dayName := reservationDate.Weekday().String()

	now := t.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if reservationDate.Before(today) {
		return "❌ Cannot make reservations for past dates. Please choose a future date.", nil
	}

	slots := branch.SlotsFor(dayName)
	if len(slots) == 0 {
		return fmt.Sprintf("❌ %s is closed on %ss.", branch.BranchName, dayName), nil
	}

	if !contains(slots, timeSlot) {
		return fmt.Sprintf("❌ %s is not available at %s on %ss.\n   Available times: %s (and more)",
			branch.BranchName, timeSlot, dayName, strings.Join(sampleSlots(slots), ", ")), nil
	}

	if partySize > branch.Capacity {
		return fmt.Sprintf("❌ Party size (%d) exceeds branch capacity (%d seats). Please contact us directly for large party arrangements.",
			partySize, branch.Capacity), nil
	}

	if partySize < 1 {
		return "❌ Invalid party size. Must be at least 1 person.", nil
	}

	if customerName == "" || customerPhone == "" {
		return "📝 To complete your reservation, please provide:\n" +
			"  1. Your full name\n" +
			"  2. Contact phone number\n" +
			"  3. Occasion (optional: birthday, anniversary, date night, etc.)\n\n" +
			"Example: 'John Doe, 9876543210, birthday celebration'", nil
	}

	reservationID := "GF-" + ulid.Make().String()
	tableNumber := 1 + t.rng.Intn(maxTable(branch.Capacity))

	if occasion == "" {
		occasion = "Not specified"
	}

	record := ledger.Reservation{
		ReservationID:  reservationID,
		CustomerName:   customerName,
		CustomerPhone:  customerPhone,
		Occasion:       occasion,
		BranchID:       branch.ID,
		BranchName:     branch.BranchName,
		BranchLocation: branch.FullAddress,
		Date:           date,
		DayOfWeek:      dayName,
		Time:           timeSlot,
		PartySize:      partySize,
		TableNumber:    tableNumber,
		CreatedAt:      t.now().Format(time.RFC3339),
		Status:         "confirmed",
	}

	if err := t.store.Append(record); err != nil {
		slog.Warn("could not save reservation to ledger", "reservation_id", reservationID, "error", err)
	}

	return t.confirmation(record, branch, reservationDate), nil
}

// resolveBranch finds the target branch by ID or name. The second
// return value is user-facing guidance when resolution fails.
func (t *ReservationTool) resolveBranch(branchID int, branchName, city string) (directory.Branch, string) {
	if branchID != 0 {
		if b, ok := t.dir.ByID(branchID); ok {
			return b, ""
		}
	}

	if branchName != "" {
		var matches []directory.Branch
		needle := strings.ToLower(branchName)
		for _, b := range t.dir.All() {
			nameMatch := strings.Contains(strings.ToLower(b.BranchName), needle)
			localityMatch := strings.Contains(strings.ToLower(b.Locality), needle)
			if !nameMatch && !localityMatch {
				continue
			}
			if city != "" && !strings.Contains(strings.ToLower(b.City), strings.ToLower(city)) {
				continue
			}
			matches = append(matches, b)
		}

		if len(matches) == 1 {
			return matches[0], ""
		}
		if len(matches) > 1 {
			var lines []string
			for _, m := range firstNBranches(matches, 5) {
				lines = append(lines, fmt.Sprintf("  - %s (ID: %d)", m.BranchName, m.ID))
			}
			return directory.Branch{}, fmt.Sprintf("Multiple branches found matching '%s':\n%s\n\nPlease specify the exact branch or use the ID.",
				branchName, strings.Join(lines, "\n"))
		}
	}

	return directory.Branch{}, "❌ Branch not found. Please provide a valid branch ID or exact branch name. Use search_branches to find available locations."
}

func (t *ReservationTool) confirmation(r ledger.Reservation, branch directory.Branch, date time.Time) string {
	var sb strings.Builder
	sb.WriteString("✅ **RESERVATION SUCCESSFULLY CONFIRMED!**\n\n")
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Fprintf(&sb, "🎫 **Reservation ID:** %s\n\n", r.ReservationID)
	fmt.Fprintf(&sb, "👤 **Guest Name:** %s\n", r.CustomerName)
	fmt.Fprintf(&sb, "📞 **Contact:** %s\n", r.CustomerPhone)
	if r.Occasion != "" && r.Occasion != "Not specified" {
		fmt.Fprintf(&sb, "🎉 **Occasion:** %s\n", r.Occasion)
	}
	fmt.Fprintf(&sb, "\n🍽️ **Restaurant:** %s\n", branch.BranchName)
	fmt.Fprintf(&sb, "📍 **Address:** %s\n\n", branch.FullAddress)
	fmt.Fprintf(&sb, "📅 **Date:** %s\n", date.Format("Monday, January 02, 2006"))
	fmt.Fprintf(&sb, "🕐 **Time:** %s\n", r.Time)
	fmt.Fprintf(&sb, "👥 **Party Size:** %d people\n", r.PartySize)
	fmt.Fprintf(&sb, "🪑 **Table Number:** %d\n\n", r.TableNumber)
	sb.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	sb.WriteString("💡 **Please Note:**\n")
	sb.WriteString("  • Arrive 10-15 minutes early\n")
	fmt.Fprintf(&sb, "  • Quote reservation ID: %s\n", r.ReservationID)
	sb.WriteString("  • Call us for modifications or cancellations\n\n")
	sb.WriteString("Looking forward to serving you at GoodFoods! 🌟")
	return sb.String()
}

// sampleSlots returns every 4th slot (2-hour spacing), at most 5.
func sampleSlots(slots []string) []string {
	var sampled []string
	for i := 0; i < len(slots) && len(sampled) < 5; i += 4 {
		sampled = append(sampled, slots[i])
	}
	return sampled
}

// maxTable caps table numbers at 20 and scales with capacity; tiny
// branches still get table 1.
func maxTable(capacity int) int {
	n := capacity / 4
	if n > 20 {
		n = 20
	}
	if n < 1 {
		n = 1
	}
	return n
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func firstNBranches(branches []directory.Branch, n int) []directory.Branch {
	if len(branches) > n {
		return branches[:n]
	}
	return branches
}
