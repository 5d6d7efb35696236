package catalog

import (
	"log/slog"
	"sort"
	"strings"
)

// AllCategories is the pseudo-category matching every product.
const AllCategories = "All"

type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
)

// ParseSortKey maps a query-string value to a sort key, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// Selection is a page's filter state: selected category, selected tag names,
// sort key, and an optional display cap for home-page teasers.
type Selection struct {
	Category   string
	Tags       []string
	Sort       SortKey
	MaxDisplay int
}

// Result is the visible product subset for a selection. Total counts the
// filtered products before MaxDisplay truncation. ShowViewAll is set when
// truncation removed items, or unconditionally when no cap was requested.
type Result struct {
	Products    []Product
	Total       int
	ShowViewAll bool
}

// Filter derives the visible products for a selection. A product is visible
// iff it matches the selected category (or "All") and, when tags are
// selected, carries at least one of them. Sorting is stable: products with
// equal keys keep their input order.
func Filter(products []Product, sel Selection) Result {
	category := sel.Category
	if category == "" {
		category = AllCategories
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if len(sel.Tags) > 0 && !hasAnyTag(p, sel.Tags) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, sel.Sort)

	total := len(filtered)
	visible := filtered
	if sel.MaxDisplay > 0 && len(visible) > sel.MaxDisplay {
		visible = visible[:sel.MaxDisplay]
	}

	return Result{
		Products:    visible,
		Total:       total,
		ShowViewAll: sel.MaxDisplay <= 0 || total > sel.MaxDisplay,
	}
}

func matchesCategory(p Product, category string) bool {
	return category == AllCategories || p.Category == category
}

func hasAnyTag(p Product, tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	case SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Title < products[i].Title
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Order < products[j].Order
		})
	}
}

// Counter derives per-category product counts. It prefers the server's
// statistics map and falls back to counting the aggregate collection when
// statistics were unavailable; the demotion is reported once at
// construction, not on every lookup.
type Counter struct {
	stats    map[string]int
	products []Product
}

// NewCounter builds a counter. byCategory is the statistics map keyed by
// category name, or nil when the statistics fetch failed.
func NewCounter(byCategory map[string]int, products []Product) *Counter {
	if len(byCategory) == 0 {
		slog.Warn("product statistics unavailable, using local category counts")
		return &Counter{products: products}
	}
	return &Counter{stats: byCategory, products: products}
}

// Count returns the product count for a category name. "All" sums the
// statistics map, or counts every product in fallback mode. Fallback
// comparison trims whitespace on both sides to tolerate upstream formatting.
func (c *Counter) Count(category string) int {
	if c.stats != nil {
		if category == AllCategories {
			total := 0
			for _, n := range c.stats {
				total += n
			}
			return total
		}
		return c.stats[category]
	}

	if category == AllCategories {
		return len(c.products)
	}
	target := strings.TrimSpace(category)
	count := 0
	for _, p := range c.products {
		if strings.TrimSpace(p.Category) == target {
			count++
		}
	}
	return count
}

// ActiveCategories returns the Active categories sorted by display order.
func ActiveCategories(categories []Category) []Category {
	active := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Status == StatusEnabled {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Order < active[j].Order
	})
	return active
}

// VisibleTags returns the tag vocabulary for the active category: a tag is
// offered iff at least one product in that category (before tag filtering)
// carries it. Unused tags are hidden, not disabled. Sorted by tag order.
func VisibleTags(products []Product, tags []Tag, category string) []Tag {
	used := make(map[string]struct{})
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		for _, name := range p.Tags {
			used[name] = struct{}{}
		}
	}

	visible := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := used[t.Name]; ok {
			visible = append(visible, t)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	return visible
}
