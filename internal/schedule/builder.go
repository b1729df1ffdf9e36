// Package schedule derives the per-weekday showtime schedule from the
// catalog: every showing of a day is collected, ordered by time and grouped
// into one row per movie.
package schedule

import (
	"sort"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// Build returns a ScheduleDay for each of the seven weekdays, including
// days without any showings.
func Build(movies []model.Movie) model.Schedule {
	out := make(model.Schedule, len(model.DisplayOrder))
	for _, day := range model.DisplayOrder {
		out[day] = BuildDay(movies, day)
	}
	return out
}

// BuildDay produces the grouped schedule for a single weekday key.  Passing
// model.Today or an unknown key yields an empty day; resolve first.
func BuildDay(movies []model.Movie, day model.DayKey) model.ScheduleDay {
	entries := collect(movies, day)

	// time order; equal times keep emission order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})

	return model.ScheduleDay{
		Key:     day,
		Label:   day.Label(),
		Entries: group(entries),
	}
}

// collect emits one entry per (movie, time) in catalog order, then stored
// time order.
func collect(movies []model.Movie, day model.DayKey) []model.ScheduleEntry {
	var entries []model.ScheduleEntry
	for _, m := range movies {
		for _, t := range m.Showtimes[day] {
			entries = append(entries, model.ScheduleEntry{
				Time:   t,
				Screen: m.ScreenNumber(),
				Movie:  m.Title,
				Rating: m.Rating,
			})
		}
	}
	return entries
}

// group folds time-sorted entries into rows keyed by title.  A row keeps
// the rating and screen of its first entry.  Rows are then ordered by
// earliest time; the stable sort leaves ties in the order rows were opened.
func group(entries []model.ScheduleEntry) []model.ScheduleRow {
	rows := []model.ScheduleRow{}
	index := map[string]int{}
	for _, e := range entries {
		i, ok := index[e.Movie]
		if !ok {
			i = len(rows)
			index[e.Movie] = i
			rows = append(rows, model.ScheduleRow{
				MovieTitle:  e.Movie,
				Rating:      e.Rating,
				Screen:      e.Screen,
				ScreenLabel: model.ScreenLabel(e.Screen),
			})
		}
		rows[i].Times = append(rows[i].Times, e.Time)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Times[0] < rows[j].Times[0]
	})
	return rows
}

// EntryCount totals the times across all rows of a day.
func EntryCount(d model.ScheduleDay) int {
	n := 0
	for _, r := range d.Entries {
		n += len(r.Times)
	}
	return n
}

// DefaultDay is the day the schedule page opens on: today when it resolves
// to a weekday, Friday otherwise.
func DefaultDay(today model.DayKey) model.DayKey {
	if today.IsWeekday() {
		return today
	}
	return model.Fri
}
