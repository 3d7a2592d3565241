package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

var (
	ingredientsHeadingRe = regexp.MustCompile(`(?i)ingredients`)
	stepsHeadingRe       = regexp.MustCompile(`(?i)preparation|method|instructions|how to`)
	measurementRe        = regexp.MustCompile(`(?i)\b(\d+|\d+/\d+)\s?(oz|cl|ml|dash|barspoon)`)
	prepVerbRe           = regexp.MustCompile(`(?i)shake|stir|build|strain|muddle`)
)

// imageAttrOrder is the preference order for lazy-loaded image attributes.
var imageAttrOrder = []string{"data-src", "data-lazy-src", "srcset", "src"}

// ParseDetail extracts a Record from one detail page. It returns
// (nil, error) only for unparsable markup; pages that parse but fail the
// recipe invariants return (nil, nil) and are skipped by the crawler.
func ParseDetail(markup []byte, url string) (*cocktail.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, fmt.Errorf("parse detail markup: %w", err)
	}

	name := extractTitle(doc)
	if !cocktail.ValidName(name) {
		return nil, nil
	}

	ingredients := extractIngredients(doc)
	if len(ingredients) < cocktail.MinIngredients {
		return nil, nil
	}

	return &cocktail.Record{
		ID:          cocktail.SlugFromURL(url),
		Name:        name,
		URL:         url,
		ImageURL:    extractImage(doc),
		Ingredients: ingredients,
		Steps:       extractSteps(doc),
		BaseSpirit:  cocktail.DetectBaseSpirit(ingredients),
		Tags:        cocktail.DeriveTags(ingredients),
		Source:      cocktail.Source,
	}, nil
}

// extractTitle returns the normalized text of the first heading-like
// element, or "" when none exists.
func extractTitle(doc *goquery.Document) string {
	return cleanText(doc.Find("h1, .entry-title").First().Text())
}

// extractImage prefers the Open Graph image, then the first plausible
// attribute on the first content image. Only the first whitespace token is
// kept so srcset lists collapse to a single URL.
func extractImage(doc *goquery.Document) string {
	chosen, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if chosen == "" {
		img := doc.Find(".wp-block-image img, .entry-content img, figure img").First()
		for _, attr := range imageAttrOrder {
			if v, ok := img.Attr(attr); ok && v != "" {
				chosen = v
				break
			}
		}
	}
	if fields := strings.Fields(chosen); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// extractIngredients takes the list following an "ingredients" heading;
// when that yields fewer than two items it scans all lists in the main
// content area for one that looks like a measured recipe.
func extractIngredients(doc *goquery.Document) []string {
	var ingredients []string
	heading := findHeading(doc, ingredientsHeadingRe)
	if heading.Length() > 0 {
		ingredients = listItems(heading.NextAllFiltered("ul,ol").First())
	}
	if len(ingredients) >= cocktail.MinIngredients {
		return ingredients
	}

	main := doc.Find("main, article, .entry-content, .elementor-widget-container").First()
	fallback := main.Find("ul,ol").FilterFunction(func(_ int, list *goquery.Selection) bool {
		items := listItems(list)
		if len(items) < cocktail.MinIngredients {
			return false
		}
		for _, item := range items {
			if measurementRe.MatchString(item) {
				return true
			}
		}
		return false
	}).First()
	if fallback.Length() > 0 {
		return listItems(fallback)
	}
	return ingredients
}

// extractSteps takes the list or paragraph following a preparation-style
// heading, falling back to the first paragraph containing a preparation
// verb. An empty result is legitimate.
func extractSteps(doc *goquery.Document) []string {
	heading := findHeading(doc, stepsHeadingRe)
	if heading.Length() > 0 {
		block := heading.NextAllFiltered("ol,ul,p").First()
		if block.Is("ol") || block.Is("ul") {
			// An empty list under the heading is not an answer; keep
			// looking in the prose.
			if items := listItems(block); len(items) > 0 {
				return items
			}
		} else if text := cleanText(block.Text()); text != "" {
			return []string{text}
		}
	}

	para := doc.Find("p").FilterFunction(func(_ int, p *goquery.Selection) bool {
		return prepVerbRe.MatchString(p.Text())
	}).First()
	if para.Length() > 0 {
		if text := cleanText(para.Text()); text != "" {
			return []string{text}
		}
	}
	return nil
}

func findHeading(doc *goquery.Document, re *regexp.Regexp) *goquery.Selection {
	return doc.Find("h1,h2,h3").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return re.MatchString(h.Text())
	}).First()
}

func listItems(list *goquery.Selection) []string {
	var items []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := cleanText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}
