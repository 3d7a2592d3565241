// Package search filters and paginates cocktail records. It performs no
// I/O and holds no state; callers may use it concurrently.
package search

import (
	"strings"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

// Pagination clamps.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Params captures one search request. Zero values mean "no filter".
type Params struct {
	Query   string
	Spirits []string
	Tags    []string
	Limit   int
	Offset  int
}

// ParseList splits a comma-separated filter value into trimmed, non-empty
// entries ("Gin, Vodka" → ["Gin", "Vodka"]).
func ParseList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Apply runs the filters in sequence (query, then spirit, then tags) and
// slices the result. There is no ranking; filtered order is preserved.
func Apply(records []cocktail.Record, p Params) []cocktail.Record {
	list := records

	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		list = filter(list, func(r cocktail.Record) bool {
			return strings.Contains(r.SearchText(), q)
		})
	}

	if len(p.Spirits) > 0 {
		wanted := lowerSet(p.Spirits)
		list = filter(list, func(r cocktail.Record) bool {
			if r.BaseSpirit == cocktail.SpiritUnknown {
				return false
			}
			_, ok := wanted[strings.ToLower(string(r.BaseSpirit))]
			return ok
		})
	}

	if len(p.Tags) > 0 {
		list = filter(list, func(r cocktail.Record) bool {
			for _, tag := range p.Tags {
				if !r.HasTag(tag) {
					return false
				}
			}
			return true
		})
	}

	return paginate(list, p.Offset, p.Limit)
}

func filter(records []cocktail.Record, keep func(cocktail.Record) bool) []cocktail.Record {
	out := make([]cocktail.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

func paginate(list []cocktail.Record, offset, limit int) []cocktail.Record {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset >= len(list) {
		return []cocktail.Record{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
