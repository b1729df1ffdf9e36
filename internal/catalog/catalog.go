// Package catalog is a read-only view over the movie catalog.  It resolves
// the "today" day key against an injectable clock and answers showtime
// lookups without ever failing: missing data means "no showings".
package catalog

import (
	"sort"
	"time"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// Catalog wraps an ordered, immutable list of movies.  The zero value and a
// nil *Catalog both behave as an empty catalog.
type Catalog struct {
	movies []model.Movie
	now    func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock replaces the wall clock used to resolve model.Today.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a catalog over movies.  The slice is copied so later changes
// by the caller do not leak in.
func New(movies []model.Movie, opts ...Option) *Catalog {
	c := &Catalog{
		movies: append([]model.Movie(nil), movies...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Movies returns the catalog in iteration order.
func (c *Catalog) Movies() []model.Movie {
	if c == nil {
		return nil
	}
	return c.movies
}

// Len reports how many movies the catalog holds.
func (c *Catalog) Len() int { return len(c.Movies()) }

// Today returns the weekday key of the clock's current local date.
func (c *Catalog) Today() model.DayKey {
	now := time.Now
	if c != nil && c.now != nil {
		now = c.now
	}
	return model.WeekdayKeys[now().Weekday()]
}

// ResolveDay maps model.Today to the current weekday key and returns every
// other key unchanged.
func (c *Catalog) ResolveDay(key model.DayKey) model.DayKey {
	if key == model.Today {
		return c.Today()
	}
	return key
}

// ShowtimesFor returns the movie's times for the resolved day, or an empty
// slice when the movie has none.
func (c *Catalog) ShowtimesFor(m model.Movie, key model.DayKey) []string {
	times := m.Showtimes[c.ResolveDay(key)]
	if times == nil {
		return []string{}
	}
	return times
}

// FindByTitle looks a movie up by exact, case-sensitive title.
func (c *Catalog) FindByTitle(title string) (model.Movie, bool) {
	for _, m := range c.Movies() {
		if m.Title == title {
			return m, true
		}
	}
	return model.Movie{}, false
}

// Titles lists movie titles in catalog order.
func (c *Catalog) Titles() []string {
	movies := c.Movies()
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

// Genre is a distinct genre key with the label of its first movie.
type Genre struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Genres lists distinct genres in order of first appearance.
func (c *Catalog) Genres() []Genre {
	seen := map[string]bool{}
	var out []Genre
	for _, m := range c.Movies() {
		if m.Genre == "" || seen[m.Genre] {
			continue
		}
		seen[m.Genre] = true
		out = append(out, Genre{Key: m.Genre, Label: m.GenreLabel})
	}
	return out
}

// AllShowtimes is the sorted, de-duplicated union of a movie's times across
// every day.  It feeds the booking form's showtime options.
func AllShowtimes(m model.Movie) []string {
	set := map[string]struct{}{}
	for _, times := range m.Showtimes {
		for _, t := range times {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
