package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinutesJSON(t *testing.T) {
	tests := map[string]Minutes{
		`120`:          120,
		`"98"`:         98,
		`" 118 mins"`:  118,
		`"abc"`:        0,
		`null`:         0,
		`{"x":1}`:      0,
		`true`:         0,
		`107.9`:        107,
	}
	for in, want := range tests {
		var m Minutes
		require.NoError(t, json.Unmarshal([]byte(in), &m), in)
		require.Equal(t, want, m, in)
	}
}

func TestMovieMissingRuntime(t *testing.T) {
	var m Movie
	require.NoError(t, json.Unmarshal([]byte(`{"title":"X"}`), &m))
	require.Equal(t, Minutes(0), m.Runtime)
	require.Equal(t, 1, m.ScreenNumber())
}

func TestParseDayKey(t *testing.T) {
	k, ok := ParseDayKey(" FRI ")
	require.True(t, ok)
	require.Equal(t, Fri, k)

	k, ok = ParseDayKey("today")
	require.True(t, ok)
	require.Equal(t, Today, k)

	k, ok = ParseDayKey("someday")
	require.False(t, ok)
	require.Equal(t, Today, k)

	require.Equal(t, "Sunday", Sun.Label())
	require.Empty(t, Today.Label())
}

func TestScheduleOrdered(t *testing.T) {
	s := Schedule{Sun: {Key: Sun}, Mon: {Key: Mon}}
	days := s.Ordered()
	require.Equal(t, []DayKey{Mon, Sun}, []DayKey{days[0].Key, days[1].Key})
	require.Equal(t, "Screen 4", ScreenLabel(4))
}
