// Package directory holds the GoodFoods branch catalogue: the static
// record of every branch location the assistant can search, recommend,
// and reserve against.
package directory

// Branch is one GoodFoods location. Field tags match the on-disk
// catalogue format, so seeded and hand-edited files both load.
type Branch struct {
	ID             int                 `json:"id"`
	BranchName     string              `json:"branch_name"`
	City           string              `json:"city"`
	Locality       string              `json:"locality"`
	FullAddress    string              `json:"full_address"`
	Cuisines       []string            `json:"cuisine_specialties"`
	PriceRange     string              `json:"price_range"`
	Rating         float64             `json:"rating"`
	Capacity       int                 `json:"capacity"`
	Features       []string            `json:"features"`
	WeeklySchedule map[string][]string `json:"weekly_schedule"`
	BranchType     string              `json:"branch_type"`
}

// SlotsFor returns the bookable time slots for a weekday name
// ("Monday" … "Sunday"). A nil or missing entry means the branch is
// closed that day.
func (b Branch) SlotsFor(dayName string) []string {
	return b.WeeklySchedule[dayName]
}
