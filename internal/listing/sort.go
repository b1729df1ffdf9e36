package listing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// SortMovies returns a stably sorted copy.  Titles compare with English
// collation after normalisation; ratings compare as raw codes, so "PG-13"
// sorts between "PG" and "R" rather than by maturity; runtimes compare
// numerically.  Desc reverses the comparison, not the tie order.
func SortMovies(movies []model.Movie, sc SortCriteria) []model.Movie {
	out := append([]model.Movie(nil), movies...)
	cmp := comparator(sc.Field)
	sign := 1
	if sc.Order == Desc {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*cmp(out[i], out[j]) < 0
	})
	return out
}

func comparator(f SortField) func(a, b model.Movie) int {
	switch f {
	case SortByRating:
		return func(a, b model.Movie) int { return strings.Compare(a.Rating, b.Rating) }
	case SortByRuntime:
		return func(a, b model.Movie) int {
			switch {
			case a.Runtime < b.Runtime:
				return -1
			case a.Runtime > b.Runtime:
				return 1
			}
			return 0
		}
	default:
		// Collator keeps scratch buffers; one per sort.
		col := collate.New(language.English)
		return func(a, b model.Movie) int {
			return col.CompareString(normalize(a.Title), normalize(b.Title))
		}
	}
}

// Query filters and then sorts, the listing page's full recompute.
func Query(movies []model.Movie, c Criteria, sc SortCriteria, showtimes ShowtimesFunc) []model.Movie {
	return SortMovies(ApplyFilters(movies, c, showtimes), sc)
}
