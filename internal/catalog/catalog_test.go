package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

func clockAt(day time.Weekday) func() time.Time {
	// 2026-10-11 is a Sunday
	base := time.Date(2026, 10, 11, 9, 0, 0, 0, time.Local)
	return func() time.Time { return base.AddDate(0, 0, int(day)) }
}

func TestResolveDay(t *testing.T) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		c := New(nil, WithClock(clockAt(wd)))
		require.Equal(t, model.WeekdayKeys[wd], c.ResolveDay(model.Today))
		require.Equal(t, model.Tue, c.ResolveDay(model.Tue))
	}
}

func TestShowtimesFor(t *testing.T) {
	m := model.Movie{Showtimes: map[model.DayKey][]string{model.Wed: {"12:00", "18:45"}}}
	c := New(nil, WithClock(clockAt(time.Wednesday)))

	require.Equal(t, []string{"12:00", "18:45"}, c.ShowtimesFor(m, model.Today))
	require.Equal(t, []string{}, c.ShowtimesFor(m, model.Thu))
	require.Equal(t, []string{}, c.ShowtimesFor(model.Movie{}, model.Wed))
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *Catalog
	require.Zero(t, c.Len())
	_, ok := c.FindByTitle("x")
	require.False(t, ok)
	require.Empty(t, c.Titles())
	require.True(t, c.Today().IsWeekday())
}

func TestFindByTitleIsExact(t *testing.T) {
	c := New([]model.Movie{{Title: "Blue Hour"}})
	_, ok := c.FindByTitle("blue hour")
	require.False(t, ok)
	m, ok := c.FindByTitle("Blue Hour")
	require.True(t, ok)
	require.Equal(t, "Blue Hour", m.Title)
}

func TestGenresFirstSeenOrder(t *testing.T) {
	c := New([]model.Movie{
		{Genre: "scifi", GenreLabel: "Sci-Fi"},
		{Genre: "drama", GenreLabel: "Drama"},
		{Genre: "scifi", GenreLabel: "Science Fiction"},
		{},
	})
	require.Equal(t, []Genre{{"scifi", "Sci-Fi"}, {"drama", "Drama"}}, c.Genres())
}

func TestAllShowtimes(t *testing.T) {
	m := model.Movie{Showtimes: map[model.DayKey][]string{
		model.Mon: {"19:00", "13:30"},
		model.Sat: {"13:30", "09:45"},
	}}
	require.Equal(t, []string{"09:45", "13:30", "19:00"}, AllShowtimes(m))
	require.Empty(t, AllShowtimes(model.Movie{}))
}

func TestNewCopiesInput(t *testing.T) {
	in := []model.Movie{{Title: "A"}}
	c := New(in)
	in[0].Title = "B"
	require.Equal(t, "A", c.Movies()[0].Title)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFileJSON(t *testing.T) {
	p := writeFile(t, "movies.json", `{"movies":[
		{"id":"a","title":"A","runtime":"118 mins","showtimes":{"fri":["14:30"]}},
		{"id":"b","title":"B","runtime":"n/a","screen":2},
		{"id":"c","title":"C","runtime":101}
	]}`)
	movies, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	require.Equal(t, model.Minutes(118), movies[0].Runtime)
	require.Equal(t, []string{"14:30"}, movies[0].Showtimes[model.Fri])
	require.Equal(t, model.Minutes(0), movies[1].Runtime)
	require.Equal(t, 2, movies[1].ScreenNumber())
	require.Equal(t, 1, movies[2].ScreenNumber())
	require.Equal(t, model.Minutes(101), movies[2].Runtime)
}

func TestLoadFileJSONList(t *testing.T) {
	p := writeFile(t, "movies.json", `[{"title":"Solo"}]`)
	movies, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, "Solo", movies[0].Title)
}

func TestLoadFileYAML(t *testing.T) {
	p := writeFile(t, "movies.yaml", `
movies:
  - id: a
    title: A
    runtime: 95
    showtimes:
      sat: ["11:00", "15:00"]
  - id: b
    title: B
    runtime: soon
`)
	movies, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	require.Equal(t, model.Minutes(95), movies[0].Runtime)
	require.Equal(t, []string{"11:00", "15:00"}, movies[0].Showtimes[model.Sat])
	require.Equal(t, model.Minutes(0), movies[1].Runtime)
}

func TestLoadFileUnsupported(t *testing.T) {
	p := writeFile(t, "movies.csv", "title\nA\n")
	_, err := LoadFile(p)
	require.True(t, errors.Is(err, ErrUnsupportedFormat))
}

type failingSource struct{}

func (failingSource) Load(context.Context) (*Catalog, error) { return nil, errors.New("down") }

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	s := NewStore(failingSource{})
	require.Nil(t, s.Current())

	prev := New([]model.Movie{{Title: "Kept"}})
	s.Set(prev)
	_, err := s.Reload(context.Background())
	require.Error(t, err)
	require.Same(t, prev, s.Current())
}

func TestStoreReloadFromFile(t *testing.T) {
	p := writeFile(t, "movies.yml", "- title: Fresh\n")
	s := NewStore(FileSource{Path: p})
	c, err := s.Reload(context.Background())
	require.NoError(t, err)
	require.Same(t, c, s.Current())
	require.Equal(t, []string{"Fresh"}, s.Current().Titles())
}
