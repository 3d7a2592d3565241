package cocktail

import (
	"regexp"
	"strings"
)

// spiritKeywords maps lowercase ingredient substrings to their spirit,
// in scan order. Tequila and mezcal share a classification.
var spiritKeywords = []struct {
	keyword string
	spirit  Spirit
}{
	{"gin", SpiritGin},
	{"vodka", SpiritVodka},
	{"tequila", SpiritAgave},
	{"mezcal", SpiritAgave},
	{"rum", SpiritRum},
	{"whisk", SpiritWhisky},
	{"brandy", SpiritBrandy},
	{"cognac", SpiritBrandy},
}

var (
	fruityRe = regexp.MustCompile(`lemon|lime|orange|grapefruit|pineapple|strawberry|passion|juice`)
	bitterRe = regexp.MustCompile(`vermouth|amaro|campari|angostura|bitters`)
	sweetRe  = regexp.MustCompile(`syrup|honey|agave|grenadine|liqueur|sugar`)
	smokyRe  = regexp.MustCompile(`mezcal|islay|smok`)
	herbalRe = regexp.MustCompile(`mint|basil|rosemary`)
	spiritRe = regexp.MustCompile(`gin|vodka|rum|tequila|whisk|brandy|mezcal`)
	juiceRe  = regexp.MustCompile(`lemon|lime|orange|grapefruit|juice|pineapple`)
)

// DetectBaseSpirit scans ingredient lines in order and returns the spirit
// of the first line containing a recognized keyword.
func DetectBaseSpirit(ingredients []string) Spirit {
	for _, line := range ingredients {
		lower := strings.ToLower(line)
		for _, sk := range spiritKeywords {
			if strings.Contains(lower, sk.keyword) {
				return sk.spirit
			}
		}
	}
	return SpiritUnknown
}

// DeriveTags applies the keyword-presence rules over the concatenated,
// lowercased ingredient text. "boozy" requires at least one spirit keyword
// and zero juice/citrus keywords.
func DeriveTags(ingredients []string) []string {
	text := strings.ToLower(strings.Join(ingredients, " "))
	tags := []string{}
	if fruityRe.MatchString(text) {
		tags = append(tags, TagFruity)
	}
	if bitterRe.MatchString(text) {
		tags = append(tags, TagBitter)
	}
	if sweetRe.MatchString(text) {
		tags = append(tags, TagSweet)
	}
	if smokyRe.MatchString(text) {
		tags = append(tags, TagSmoky)
	}
	if herbalRe.MatchString(text) {
		tags = append(tags, TagHerbal)
	}
	if spiritRe.MatchString(text) && !juiceRe.MatchString(text) {
		tags = append(tags, TagBoozy)
	}
	return tags
}

// SlugFromURL derives the record ID from the URL's final path segment,
// with any trailing slash stripped.
func SlugFromURL(rawURL string) string {
	trimmed := strings.TrimSuffix(rawURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
