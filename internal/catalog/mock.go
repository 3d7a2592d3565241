package catalog

import "github.com/bevtrends/bevtrends/internal/cocktail"

// mockSet is served in safe mode when no snapshot exists, so the API stays
// usable without depending on the third-party site.
var mockSet = []cocktail.Record{
	{
		ID:          "negroni",
		Name:        "Negroni",
		URL:         "https://iba-world.com/cocktails/negroni/",
		ImageURL:    "https://images.unsplash.com/photo-1565895405227-31a46b101bb7?q=80&w=1200&auto=format&fit=crop",
		Ingredients: []string{"3 cl Gin", "3 cl Campari", "3 cl Sweet Vermouth", "Orange peel"},
		Steps:       []string{"Stir with ice and strain into an old fashioned glass over a large cube. Express orange peel."},
		BaseSpirit:  cocktail.SpiritGin,
		Tags:        []string{"bitter", "boozy"},
		Source:      cocktail.Source,
	},
	{
		ID:          "margarita",
		Name:        "Margarita",
		URL:         "https://iba-world.com/cocktails/margarita/",
		ImageURL:    "https://images.unsplash.com/photo-1604908176997-43162b9451b5?q=80&w=1200&auto=format&fit=crop",
		Ingredients: []string{"5 cl Tequila", "2 cl Triple Sec", "2 cl Lime juice", "Salt rim (optional)"},
		Steps:       []string{"Shake all ingredients with ice and strain into a chilled glass."},
		BaseSpirit:  cocktail.SpiritAgave,
		Tags:        []string{"citrus", "fruity"},
		Source:      cocktail.Source,
	},
}

// MockSet returns a copy of the static fallback records.
func MockSet() []cocktail.Record {
	out := make([]cocktail.Record, len(mockSet))
	copy(out, mockSet)
	return out
}
