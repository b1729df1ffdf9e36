// Package repository contains the MySQL-backed catalog source.  Movies are
// stored in `movies` and their weekly times in `movie_showtimes`; both are
// read in their stored order so the catalog iteration order is stable.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cinema-showtimes/internal/catalog"
	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// MovieRepo reads the catalog from MySQL.
type MovieRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.  now may
// be nil, in which case the catalog uses the wall clock.
func NewMovieRepo(db *sql.DB, now func() time.Time) *MovieRepo {
	return &MovieRepo{db: db, now: now}
}

// ListAll returns every movie ordered by position then id, with showtimes
// attached in their stored order.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const qMovies = `SELECT id, title, genre, genre_label, rating, runtime_min,
	                        image, alt, COALESCE(description, ''), screen
	                 FROM movies ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, qMovies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	index := map[string]int{}
	for rows.Next() {
		var (
			m       model.Movie
			runtime sql.NullInt64
			screen  sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.GenreLabel, &m.Rating, &runtime,
			&m.Image, &m.Alt, &m.Description, &screen); err != nil {
			return nil, err
		}
		if runtime.Valid {
			m.Runtime = model.Minutes(runtime.Int64)
		}
		if screen.Valid {
			m.Screen = int(screen.Int64)
		}
		index[m.ID] = len(movies)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrCatalogEmpty
	}

	const qTimes = `SELECT movie_id, day, show_time FROM movie_showtimes
	                ORDER BY movie_id, day, position`
	trows, err := r.db.QueryContext(ctx, qTimes)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var movieID, day, at string
		if err := trows.Scan(&movieID, &day, &at); err != nil {
			return nil, err
		}
		attachShowtime(movies, index, movieID, day, at)
	}
	if err := trows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// Load satisfies catalog.Source.
func (r *MovieRepo) Load(ctx context.Context) (*catalog.Catalog, error) {
	movies, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(movies, catalog.WithClock(r.now)), nil
}

// attachShowtime appends one time to the owning movie.  Rows for unknown
// movies or days are skipped.
func attachShowtime(movies []model.Movie, index map[string]int, movieID, day, at string) {
	i, ok := index[movieID]
	if !ok {
		return
	}
	key, ok := model.ParseDayKey(day)
	if !ok || !key.IsWeekday() {
		return
	}
	if movies[i].Showtimes == nil {
		movies[i].Showtimes = map[model.DayKey][]string{}
	}
	movies[i].Showtimes[key] = append(movies[i].Showtimes[key], at)
}

// Replace rewrites the whole catalog inside one transaction.  The CLI uses
// it to seed MySQL from a catalog file.
func (r *MovieRepo) Replace(ctx context.Context, movies []model.Movie) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM movie_showtimes`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return err
	}
	const qMovie = `INSERT INTO movies
		(id, position, title, genre, genre_label, rating, runtime_min, image, alt, description, screen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	const qTime = `INSERT INTO movie_showtimes (movie_id, day, position, show_time) VALUES (?, ?, ?, ?)`
	for pos, m := range movies {
		var screen any
		if m.Screen > 0 {
			screen = m.Screen
		}
		if _, err = tx.ExecContext(ctx, qMovie, m.ID, pos, m.Title, m.Genre, m.GenreLabel, m.Rating,
			int(m.Runtime), m.Image, m.Alt, m.Description, screen); err != nil {
			return err
		}
		for _, day := range model.WeekdayKeys {
			for i, at := range m.Showtimes[day] {
				if _, err = tx.ExecContext(ctx, qTime, m.ID, string(day), i, at); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
