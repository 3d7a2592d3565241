// Package cocktail defines the core types shared across the acquisition
// and search pipeline.
package cocktail

import (
	"regexp"
	"strings"
)

// Source is the provenance label stamped on every crawled record.
const Source = "IBA"

// Spirit is a base-spirit classification derived from ingredient text.
type Spirit string

// Recognized base spirits.
const (
	SpiritGin     Spirit = "Gin"
	SpiritVodka   Spirit = "Vodka"
	SpiritAgave   Spirit = "Tequila/Mezcal"
	SpiritRum     Spirit = "Rum"
	SpiritWhisky  Spirit = "Whisky"
	SpiritBrandy  Spirit = "Brandy"
	SpiritUnknown Spirit = ""
)

// Tag values drawn from the fixed flavor vocabulary.
const (
	TagFruity = "fruity"
	TagBitter = "bitter"
	TagSweet  = "sweet"
	TagSmoky  = "smoky"
	TagHerbal = "herbal"
	TagBoozy  = "boozy"
)

// Record is the unit of persisted knowledge: one recipe extracted from a
// detail page. The full set is replaced wholesale on each successful crawl;
// there is no per-record update path.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	BaseSpirit  Spirit   `json:"baseSpirit,omitempty"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`
}

// nonRecipeTitle matches hub/collection pages whose headings lead with
// "The " (e.g. "The Unforgettables"); those are never single recipes.
var nonRecipeTitle = regexp.MustCompile(`(?i)^the\s+`)

// MinIngredients is the smallest ingredient list accepted as a recipe.
const MinIngredients = 2

// Valid reports whether the record satisfies the persistence invariants:
// a usable name and at least MinIngredients ingredient lines.
func (r Record) Valid() bool {
	if strings.TrimSpace(r.Name) == "" || nonRecipeTitle.MatchString(r.Name) {
		return false
	}
	return len(r.Ingredients) >= MinIngredients
}

// ValidName reports whether a title passes the name invariant on its own.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && !nonRecipeTitle.MatchString(name)
}

// HasTag reports whether the record carries the tag, case-insensitively.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SearchText returns the lowercased haystack used for substring queries:
// the name followed by every ingredient line.
func (r Record) SearchText() string {
	parts := make([]string, 0, len(r.Ingredients)+1)
	parts = append(parts, r.Name)
	parts = append(parts, r.Ingredients...)
	return strings.ToLower(strings.Join(parts, " "))
}
