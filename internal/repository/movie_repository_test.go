package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

func TestAttachShowtime(t *testing.T) {
	movies := []model.Movie{{ID: "a"}, {ID: "b"}}
	index := map[string]int{"a": 0, "b": 1}

	attachShowtime(movies, index, "a", "fri", "19:00")
	attachShowtime(movies, index, "a", "FRI", "21:30")
	attachShowtime(movies, index, "b", "sun", "10:00")
	attachShowtime(movies, index, "zzz", "mon", "12:00")
	attachShowtime(movies, index, "b", "xyz", "12:00")
	attachShowtime(movies, index, "b", "today", "12:00")

	require.Equal(t, []string{"19:00", "21:30"}, movies[0].Showtimes[model.Fri])
	require.Equal(t, map[model.DayKey][]string{model.Sun: {"10:00"}}, movies[1].Showtimes)
}
