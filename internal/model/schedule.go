package model

import "fmt"

// ScheduleEntry is a single (day, movie, time) showing emitted while
// building a schedule, before entries are grouped per movie.
type ScheduleEntry struct {
    Time   string `json:"time"`
    Screen int    `json:"screen"`
    Movie  string `json:"movie"`
    Rating string `json:"rating"`
}

// ScheduleRow aggregates every showing of one movie on one day.  Times are
// ascending; Rating and Screen come from the movie's first entry.
type ScheduleRow struct {
    MovieTitle  string   `json:"movie"`
    Rating      string   `json:"rating"`
    Screen      int      `json:"screen"`
    ScreenLabel string   `json:"screen_label"`
    Times       []string `json:"times"`
}

// ScheduleDay is the grouped schedule for one weekday.  An empty Entries
// slice means no schedule is available that day; it is not an error.
type ScheduleDay struct {
    Key     DayKey        `json:"day"`
    Label   string        `json:"label"`
    Entries []ScheduleRow `json:"entries"`
}

// Heading is the title shown above a day's table ("Friday Showtimes").
func (d ScheduleDay) Heading() string { return d.Label + " Showtimes" }

// ScreenLabel formats a screen number the way the schedule table shows it.
func ScreenLabel(screen int) string { return fmt.Sprintf("Screen %d", screen) }

// Schedule holds all seven days keyed by weekday.
type Schedule map[DayKey]ScheduleDay

// Ordered returns the days in DisplayOrder.
func (s Schedule) Ordered() []ScheduleDay {
    out := make([]ScheduleDay, 0, len(DisplayOrder))
    for _, k := range DisplayOrder {
        if d, ok := s[k]; ok {
            out = append(out, d)
        }
    }
    return out
}
