package cases

import (
	"sort"
	"strings"
)

// ApplyFilter returns the cases matching f, preserving relative order.
// It is pure: the input slice is never modified.
func ApplyFilter(items []VideoCase, f FilterState) []VideoCase {
	out := make([]VideoCase, 0, len(items))
	for _, item := range items {
		if matches(item, f) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item VideoCase, f FilterState) bool {
	if !matchesSearch(item, f.Search) {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Region != "" && item.Region != f.Region {
		return false
	}
	if f.RobotType != "" && item.RobotType != f.RobotType {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match against the
// client name, every keyword, and the subcategory. A missing
// subcategory simply fails that clause.
func matchesSearch(item VideoCase, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(item.ClientName), needle) {
		return true
	}
	for _, k := range item.Keywords {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
	}
	if item.Subcategory != "" && strings.Contains(strings.ToLower(item.Subcategory), needle) {
		return true
	}
	return false
}

// FilterOptions are the selectable dropdown values derived from the
// values actually present in a collection: distinct and sorted, so a
// free-text value typed into a record becomes selectable after the next
// reload.
type FilterOptions struct {
	Categories []string
	Regions    []string
	RobotTypes []string
}

func OptionsFrom(items []VideoCase) FilterOptions {
	return FilterOptions{
		Categories: distinctSorted(items, func(c VideoCase) string { return c.Category }),
		Regions:    distinctSorted(items, func(c VideoCase) string { return c.Region }),
		RobotTypes: distinctSorted(items, func(c VideoCase) string { return c.RobotType }),
	}
}

func distinctSorted(items []VideoCase, field func(VideoCase) string) []string {
	seen := make(map[string]bool, len(items))
	values := make([]string, 0, len(items))
	for _, item := range items {
		v := field(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
