package care

import (
	"strings"

	pstrings "plantcare/pkg/platform/strings"
)

// Searchable is implemented by records that expose their display fields to
// search.
type Searchable interface {
	SearchFields() []string
}

// Filter keeps the items for which any search field contains query, ignoring
// case and diacritics. A blank query returns items unchanged. It never
// reorders.
func Filter[T Searchable](items []T, query string) []T {
	return FilterBy(items, query, func(item T) []string { return item.SearchFields() })
}

// FilterBy is Filter with the field set supplied by the caller.
func FilterBy[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	needle := pstrings.Fold(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(pstrings.Fold(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
