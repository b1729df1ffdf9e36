package listing

import (
	"strings"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// ShowtimesFunc looks up a movie's times for a day key; catalog.ShowtimesFor
// has this shape.
type ShowtimesFunc func(m model.Movie, day model.DayKey) []string

// ApplyFilters keeps, in input order, the movies that match the search
// text, the genre and have at least one showing on the selected day.  A
// movie with no showings that day is always excluded.
func ApplyFilters(movies []model.Movie, c Criteria, showtimes ShowtimesFunc) []model.Movie {
	search := normalize(c.SearchText)
	genre := c.Genre
	if genre == "" {
		genre = AllGenres
	}
	day := c.Day
	if day == "" {
		day = model.Today
	}

	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if search != "" && !strings.Contains(normalize(m.Title), search) {
			continue
		}
		if genre != AllGenres && m.Genre != genre {
			continue
		}
		if len(showtimes(m, day)) == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}
