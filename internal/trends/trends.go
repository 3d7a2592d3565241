// Package trends serves the curated near-me drink feed. The data is a
// seeded editorial set until a live venue source exists.
package trends

import (
	"context"
	"sort"
	"strings"
)

// Location is the coarse venue area a trend is reported from.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Drink is one trending item near the caller.
type Drink struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	ImageURL        string   `json:"imageUrl"`
	Description     string   `json:"description"`
	Recipe          []string `json:"recipe"`
	TopBrands       []string `json:"topBrands"`
	SponsoredBrands []string `json:"sponsoredBrands"`
	Tags            []string `json:"tags"`
	Location        Location `json:"location"`
	DistanceMiles   float64  `json:"distanceMiles"`
	PopularityScore int      `json:"popularityScore"`
	PriceRange      string   `json:"priceRange"`
	Venues          []string `json:"venues"`
}

// Query filters and orders the feed. A zero MaxDistance means no distance
// cap; empty Type and Tag match everything.
type Query struct {
	MaxDistance float64
	Type        string
	Tag         string
	Sort        string // "distance" or "popularity"; anything else keeps seed order
}

// Repository returns trending drinks for a query.
type Repository interface {
	NearMe(ctx context.Context, q Query) ([]Drink, error)
}

// Memory serves the seeded set.
type Memory struct {
	drinks []Drink
}

// NewMemory returns a Memory repository holding the default seed.
func NewMemory() *Memory {
	return &Memory{drinks: seed()}
}

// NearMe filters the seed by distance, type and tag, then sorts.
func (m *Memory) NearMe(_ context.Context, q Query) ([]Drink, error) {
	out := make([]Drink, 0, len(m.drinks))
	for _, d := range m.drinks {
		if q.MaxDistance > 0 && d.DistanceMiles > q.MaxDistance {
			continue
		}
		if q.Type != "" && !strings.EqualFold(d.Type, q.Type) {
			continue
		}
		if q.Tag != "" && !hasTag(d, q.Tag) {
			continue
		}
		out = append(out, d)
	}
	switch q.Sort {
	case "distance":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DistanceMiles < out[j].DistanceMiles
		})
	case "popularity":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PopularityScore > out[j].PopularityScore
		})
	}
	return out, nil
}

func hasTag(d Drink, tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func seed() []Drink {
	return []Drink{
		{
			ID:              "1",
			Name:            "Old Fashioned",
			Type:            "Cocktail",
			ImageURL:        "https://images.unsplash.com/photo-1542156822-6924d1a71ace?q=80&w=1200&auto=format&fit=crop",
			Description:     "Classic bourbon, bitters, sugar, orange oils.",
			Recipe:          []string{"2 oz Bourbon", "2 dashes Angostura", "1 sugar cube", "Orange peel"},
			TopBrands:       []string{"Woodford Reserve", "Buffalo Trace", "Four Roses"},
			SponsoredBrands: []string{"Bulleit Bourbon"},
			Tags:            []string{"whiskey", "stirred", "classic"},
			Location:        Location{City: "Tampa", State: "FL"},
			DistanceMiles:   1.2,
			PopularityScore: 92,
			PriceRange:      "$$",
			Venues:          []string{"Velvet Lounge", "Harbor House"},
		},
		{
			ID:              "2",
			Name:            "Hazy IPA",
			Type:            "Beer",
			ImageURL:        "https://images.unsplash.com/photo-1516455590571-18256e5bb9ff?q=80&w=1200&auto=format&fit=crop",
			Description:     "Juicy, tropical hop notes with soft bitterness.",
			Recipe:          []string{},
			TopBrands:       []string{"Cigar City", "Voodoo Ranger", "Trillium"},
			SponsoredBrands: []string{"Sierra Nevada"},
			Tags:            []string{"beer", "hoppy", "juicy"},
			Location:        Location{City: "St. Petersburg", State: "FL"},
			DistanceMiles:   4.5,
			PopularityScore: 88,
			PriceRange:      "$",
			Venues:          []string{"Sunset Taproom", "Pier Brewhouse"},
		},
		{
			ID:              "3",
			Name:            "Espresso Martini",
			Type:            "Cocktail",
			ImageURL:        "https://images.unsplash.com/photo-1617195737496-7e8b5f7a6b66?q=80&w=1200&auto=format&fit=crop",
			Description:     "Vodka, coffee liqueur, fresh espresso, silky and bold.",
			Recipe:          []string{"2 oz Vodka", "1 oz Coffee Liqueur", "1 oz Espresso"},
			TopBrands:       []string{"Kahlúa", "Absolut", "Tito's"},
			SponsoredBrands: []string{},
			Tags:            []string{"coffee", "sweet", "shaken"},
			Location:        Location{City: "Clearwater", State: "FL"},
			DistanceMiles:   3.1,
			PopularityScore: 95,
			PriceRange:      "$$",
			Venues:          []string{"Roast & Rye", "Boardwalk Bar"},
		},
	}
}
