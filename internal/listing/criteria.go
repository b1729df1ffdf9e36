// Package listing narrows and orders the movie listing: a text/genre/day
// filter followed by a stable sort on title, rating or runtime.
package listing

import (
	"strings"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// AllGenres disables the genre filter.
const AllGenres = "all"

// Criteria selects which movies are visible.
type Criteria struct {
	SearchText string
	Genre      string
	Day        model.DayKey
}

// SortField names the comparator used by SortMovies.
type SortField string

const (
	SortByTitle   SortField = "title"
	SortByRating  SortField = "rating"
	SortByRuntime SortField = "runtime"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortCriteria pairs a field with a direction.
type SortCriteria struct {
	Field SortField
	Order SortOrder
}

// DefaultCriteria mirrors the listing page on first load.
func DefaultCriteria() Criteria {
	return Criteria{Genre: AllGenres, Day: model.Today}
}

// DefaultSort is title ascending.
func DefaultSort() SortCriteria {
	return SortCriteria{Field: SortByTitle, Order: Asc}
}

// ParseSortField falls back to title for unknown input.
func ParseSortField(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByTitle, SortByRating, SortByRuntime:
		return f
	}
	return SortByTitle
}

// ParseSortOrder treats anything other than "desc" as ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// normalize lowercases and trims, the same way for titles and search text.
func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
