package ledger

import (
	"strings"

	"ledger/internal/core"
)

// Filter returns the entries matching both the search term and the category
// filter, in their ledger order. The term matches case-insensitively as a
// substring of the particular, the company name or the category. The
// category filter matches core.AllCategories or an exact category.
func Filter(entries []core.Entry, searchTerm, categoryFilter string) []core.Entry {
	term := strings.ToLower(searchTerm)
	out := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		if matchesCategory(e, categoryFilter) && matchesSearch(e, term) {
			out = append(out, e)
		}
	}
	return out
}

func matchesSearch(e core.Entry, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(e.Particular), lowerTerm) ||
		strings.Contains(strings.ToLower(e.CompanyName), lowerTerm) ||
		strings.Contains(strings.ToLower(string(e.Category)), lowerTerm)
}

func matchesCategory(e core.Entry, filter string) bool {
	return filter == core.AllCategories || string(e.Category) == filter
}
