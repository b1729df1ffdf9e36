package model

import "strings"

// DayKey identifies a day of the week in the catalog's showtime map.  The
// seven concrete keys are three-letter lowercase codes; Today is a sentinel
// that the catalog resolves against its clock at query time.
type DayKey string

const (
    Sun   DayKey = "sun"
    Mon   DayKey = "mon"
    Tue   DayKey = "tue"
    Wed   DayKey = "wed"
    Thu   DayKey = "thu"
    Fri   DayKey = "fri"
    Sat   DayKey = "sat"
    Today DayKey = "today"
)

// WeekdayKeys is indexed by time.Weekday (0=Sunday .. 6=Saturday).
var WeekdayKeys = [7]DayKey{Sun, Mon, Tue, Wed, Thu, Fri, Sat}

// DisplayOrder is the order in which the schedule page lists days.
var DisplayOrder = [7]DayKey{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var dayLabels = map[DayKey]string{
    Mon: "Monday",
    Tue: "Tuesday",
    Wed: "Wednesday",
    Thu: "Thursday",
    Fri: "Friday",
    Sat: "Saturday",
    Sun: "Sunday",
}

// Label returns the human day name ("Monday") or "" for Today and unknown keys.
func (d DayKey) Label() string { return dayLabels[d] }

// IsWeekday reports whether d is one of the seven concrete keys.
func (d DayKey) IsWeekday() bool {
    _, ok := dayLabels[d]
    return ok
}

// ParseDayKey normalises user input into a DayKey.  The second result is
// false when the input is not a weekday key or "today"; callers that want
// the selector's default should fall back to Today in that case.
func ParseDayKey(s string) (DayKey, bool) {
    k := DayKey(strings.ToLower(strings.TrimSpace(s)))
    if k == Today || k.IsWeekday() {
        return k, true
    }
    return Today, false
}
