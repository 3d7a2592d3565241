package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detailPathRe matches a single-slug detail page under the cocktails prefix.
var detailPathRe = regexp.MustCompile(`/cocktails/[^/]+/?$`)

// excludedSlugs are known non-recipe pages that share the detail path shape.
var excludedSlugs = map[string]struct{}{
	"the-new-era":           {},
	"the-unforgettables":    {},
	"contemporary-classics": {},
	"about-us":              {},
	"constitution":          {},
	"board":                 {},
	"academy":               {},
	"iba-wcc":               {},
	"news":                  {},
	"events":                {},
	"contact":               {},
}

// minPrimaryLinks is the threshold below which the card-based extraction is
// considered to have missed the grid and the broader anchor scan kicks in.
const minPrimaryLinks = 10

// ExtractLinks returns deduplicated candidate detail-page URLs from index
// markup, insertion order preserved.
func ExtractLinks(markup []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, fmt.Errorf("parse index markup: %w", err)
	}

	seen := make(map[string]struct{})
	var urls []string
	add := func(href string) {
		href = strings.SplitN(href, "?", 2)[0]
		if !acceptDetailHref(href) {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
	}

	doc.Find(".elementor-post, .e-loop-item, article").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find(`a[href*="/cocktails/"]`).First().Attr("href")
		if ok {
			add(href)
		}
	})

	if len(urls) < minPrimaryLinks {
		doc.Find(`main a[href*='/cocktails/']`).Each(func(_ int, a *goquery.Selection) {
			if href, ok := a.Attr("href"); ok {
				add(href)
			}
		})
	}
	return urls, nil
}

func acceptDetailHref(href string) bool {
	if href == "" || !detailPathRe.MatchString(href) {
		return false
	}
	slug := strings.TrimSuffix(href, "/")
	slug = slug[strings.LastIndex(slug, "/")+1:]
	_, excluded := excludedSlugs[slug]
	return !excluded
}
