package directory

import (
	"fmt"
	"math/rand"
)

const (
	brandName  = "GoodFoods"
	priceRange = "₹₹₹"
)

var cuisineSpecialties = []string{"Italian", "North Indian", "Continental", "Asian Fusion"}

// Common features every branch carries on top of its locality-specific ones.
var commonFeatures = []string{"Professional Staff", "Clean & Hygienic", "Card Payment"}

type seedLocality struct {
	locality string
	features []string
}

// Metro cities carry the most branches, tier-2 a few, tier-3 one each.
var metroLocations = map[string][]seedLocality{
	"Delhi": {
		{"Connaught Place", []string{"Rooftop Seating", "Live Music", "Full Bar", "Valet Parking"}},
		{"Saket", []string{"Mall Location", "Family Friendly", "Kids Play Area", "Wifi"}},
		{"Hauz Khas", []string{"Lake View", "Outdoor Seating", "Romantic Ambiance", "Full Bar"}},
		{"Rohini", []string{"Ample Parking", "Family Friendly", "Spacious Dining", "AC"}},
		{"Dwarka", []string{"Near Metro", "Quick Service", "Family Friendly", "Wifi"}},
		{"Nehru Place", []string{"Corporate Hub", "Business Lunch", "Wifi", "AC"}},
		{"Rajouri Garden", []string{"Shopping District", "Family Friendly", "Live Music"}},
		{"Vasant Kunj", []string{"Premium Location", "Valet Parking", "Full Bar", "Romantic"}},
	},
	"Mumbai": {
		{"Bandra", []string{"Sea View", "Outdoor Seating", "Celebrity Hotspot", "Full Bar"}},
		{"Andheri", []string{"Near Airport", "Business Travelers", "Quick Service", "Wifi"}},
		{"Colaba", []string{"Heritage Building", "Tourist Friendly", "Outdoor Seating", "Full Bar"}},
		{"Powai", []string{"Lake View", "Romantic Ambiance", "Live Music", "Valet Parking"}},
		{"Thane", []string{"Mall Location", "Family Friendly", "Spacious", "Kids Area"}},
		{"Juhu", []string{"Beach Proximity", "Outdoor Seating", "Full Bar", "Romantic"}},
		{"Lower Parel", []string{"Corporate Hub", "Business Lunch", "Rooftop Bar", "Wifi"}},
	},
	"Bangalore": {
		{"Koramangala", []string{"Pub Street", "Live Music", "Full Bar", "Late Night"}},
		{"Indiranagar", []string{"Garden Seating", "Outdoor Dining", "Pet Friendly", "Full Bar"}},
		{"Whitefield", []string{"IT Hub", "Corporate Lunch", "Wifi", "AC"}},
		{"MG Road", []string{"Central Location", "Metro Access", "Full Bar", "Rooftop"}},
		{"JP Nagar", []string{"Family Friendly", "Spacious Dining", "Kids Play Area", "Parking"}},
		{"HSR Layout", []string{"Rooftop Seating", "Outdoor Dining", "Live Music", "Full Bar"}},
	},
	"Chennai": {
		{"T Nagar", []string{"Shopping Hub", "Family Friendly", "AC", "Wifi"}},
		{"Velachery", []string{"Residential Area", "Family Dining", "Parking", "Kids Area"}},
		{"OMR", []string{"IT Corridor", "Business Lunch", "Wifi", "Quick Service"}},
		{"Nungambakkam", []string{"Premium Location", "Valet Parking", "Full Bar", "Romantic"}},
		{"Adyar", []string{"Beach Proximity", "Outdoor Seating", "Family Friendly"}},
	},
	"Hyderabad": {
		{"Banjara Hills", []string{"Premium Location", "Valet Parking", "Full Bar", "Rooftop"}},
		{"Hitech City", []string{"IT Hub", "Corporate Lunch", "Wifi", "AC"}},
		{"Gachibowli", []string{"Corporate Zone", "Business Travelers", "Wifi", "Parking"}},
		{"Jubilee Hills", []string{"Upscale Dining", "Romantic Ambiance", "Full Bar", "Live Music"}},
	},
}

var tier2Locations = map[string][]seedLocality{
	"Pune": {
		{"Koregaon Park", []string{"Premium Location", "Outdoor Seating", "Full Bar"}},
		{"Hinjewadi", []string{"IT Park", "Corporate Lunch", "Wifi"}},
		{"Viman Nagar", []string{"Family Friendly", "Parking", "Spacious"}},
	},
	"Jaipur": {
		{"C-Scheme", []string{"Central Location", "Tourist Friendly", "Full Bar"}},
		{"Malviya Nagar", []string{"Family Dining", "Parking", "AC"}},
	},
	"Chandigarh": {
		{"Sector 17", []string{"Shopping Hub", "Family Friendly", "AC"}},
		{"Elante Mall", []string{"Mall Location", "Kids Area", "Wifi"}},
	},
	"Lucknow": {
		{"Hazratganj", []string{"Heritage Area", "Tourist Friendly", "AC"}},
		{"Gomti Nagar", []string{"Upscale Dining", "Valet Parking", "Full Bar"}},
	},
	"Ahmedabad": {
		{"SG Highway", []string{"Corporate Zone", "Business Lunch", "Wifi"}},
		{"CG Road", []string{"Shopping District", "Family Friendly", "AC"}},
	},
}

var tier3Locations = map[string][]seedLocality{
	"Indore":        {{"Vijay Nagar", []string{"Family Friendly", "AC", "Parking"}}},
	"Mysore":        {{"Saraswati Puram", []string{"Tourist Friendly", "Heritage View", "AC"}}},
	"Coimbatore":    {{"RS Puram", []string{"Family Dining", "Parking", "Wifi"}}},
	"Nashik":        {{"College Road", []string{"Family Friendly", "AC", "Spacious"}}},
	"Surat":         {{"Athwa", []string{"Family Dining", "AC", "Parking"}}},
	"Vadodara":      {{"Alkapuri", []string{"Central Location", "Family Friendly", "AC"}}},
	"Kochi":         {{"MG Road", []string{"Waterfront View", "Outdoor Seating", "Full Bar"}}},
	"Visakhapatnam": {{"Beach Road", []string{"Sea View", "Outdoor Seating", "Romantic"}}},
	"Bhubaneswar":   {{"Sahid Nagar", []string{"Family Friendly", "AC", "Parking"}}},
	"Guwahati":      {{"GS Road", []string{"Central Location", "Family Dining", "AC"}}},
}

// Every branch keeps the same hours: 10:00 through 23:00 in 30-minute slots.
func standardSchedule() map[string][]string {
	var slots []string
	for h := 10; h <= 23; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < 23 {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	schedule := make(map[string][]string, len(days))
	for _, day := range days {
		schedule[day] = slots
	}
	return schedule
}

func withCommonFeatures(features []string) []string {
	out := make([]string, 0, len(features)+len(commonFeatures))
	seen := make(map[string]bool)
	for _, f := range append(append([]string{}, features...), commonFeatures...) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// Seed generates the full branch catalogue. rng controls ratings and
// capacities; pass a fixed-seed source for reproducible catalogues.
func Seed(rng *rand.Rand) []Branch {
	var branches []Branch
	id := 1

	schedule := standardSchedule()

	add := func(cities map[string][]seedLocality, order []string, branchType string, minCap, maxCap int) {
		for _, city := range order {
			for _, loc := range cities[city] {
				branches = append(branches, Branch{
					ID:             id,
					BranchName:     brandName + " - " + loc.locality,
					City:           city,
					Locality:       loc.locality,
					FullAddress:    loc.locality + ", " + city,
					Cuisines:       cuisineSpecialties,
					PriceRange:     priceRange,
					Rating:         float64(int(40+rng.Float64()*8+0.5)) / 10, // 4.0 .. 4.8, one decimal
					Capacity:       minCap + rng.Intn(maxCap-minCap+1),
					Features:       withCommonFeatures(loc.features),
					WeeklySchedule: schedule,
					BranchType:     branchType,
				})
				id++
			}
		}
	}

	add(metroLocations, []string{"Delhi", "Mumbai", "Bangalore", "Chennai", "Hyderabad"}, "Metro", 80, 200)
	add(tier2Locations, []string{"Pune", "Jaipur", "Chandigarh", "Lucknow", "Ahmedabad"}, "Tier-2", 50, 120)
	add(tier3Locations, []string{
		"Indore", "Mysore", "Coimbatore", "Nashik", "Surat",
		"Vadodara", "Kochi", "Visakhapatnam", "Bhubaneswar", "Guwahati",
	}, "Tier-3", 30, 80)

	return branches
}
