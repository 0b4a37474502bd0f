package core

import (
	"sort"
	"strings"
	"time"
)

// Filters narrows a result set. Zero-valued fields mean "no constraint".
// Type and category are exact matches, the date bounds form an inclusive
// closed range, and search is a case-insensitive substring test ORed across
// name, description and tags. All present filters are ANDed together.
type Filters struct {
	Type      ItemType
	Category  Category
	StartDate time.Time
	EndDate   time.Time
	Search    string
}

// IsZero returns true if no constraint is set.
func (f Filters) IsZero() bool {
	return f.Type == "" && f.Category == "" && f.StartDate.IsZero() &&
		f.EndDate.IsZero() && f.Search == ""
}

// Match reports whether the item satisfies every filter.
func (f Filters) Match(item Item) bool {
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if !f.StartDate.IsZero() && item.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && item.Date.After(f.EndDate) {
		return false
	}
	if f.Search != "" && !f.MatchSearch(item) {
		return false
	}
	return true
}

// MatchSearch applies only the free-text part of the filter. The search
// term matches if name, description or any tag contains it, ignoring case.
// An empty term matches everything.
func (f Filters) MatchSearch(item Item) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(item.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), term) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Apply filters the slice and returns the matches ordered by date
// descending. The input slice is not modified.
func (f Filters) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders items by transaction date, newest first. The sort
// is stable so ties keep their storage order.
func SortByDateDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
}
