package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-showtimes/internal/model"
    "github.com/iliyamo/cinema-showtimes/internal/schedule"
)

// MsgNoSchedule is shown for a day without showings.
const MsgNoSchedule = "No schedule available for this day."

type dayView struct {
    model.ScheduleDay
    Heading string `json:"heading"`
    Message string `json:"message,omitempty"`
}

func viewOf(d model.ScheduleDay) dayView {
    v := dayView{ScheduleDay: d, Heading: d.Heading()}
    if v.Entries == nil {
        v.Entries = []model.ScheduleRow{}
    }
    if len(v.Entries) == 0 {
        v.Message = MsgNoSchedule
    }
    return v
}

// Schedule returns all seven days in display order and the day the page
// opens on.
func (h *CatalogHandler) Schedule(c echo.Context) error {
    cat := h.Store.Current()
    days := schedule.Build(cat.Movies()).Ordered()
    views := make([]dayView, 0, len(days))
    for _, d := range days {
        views = append(views, viewOf(d))
    }
    return c.JSON(http.StatusOK, echo.Map{
        "default_day": schedule.DefaultDay(cat.Today()),
        "days":        views,
    })
}

// ScheduleDay returns one day.  "today" resolves against the catalog clock.
func (h *CatalogHandler) ScheduleDay(c echo.Context) error {
    key, ok := model.ParseDayKey(c.Param("day"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{
            "error":   "unknown_day",
            "message": "day must be one of sun, mon, tue, wed, thu, fri, sat or today",
        })
    }
    cat := h.Store.Current()
    day := schedule.BuildDay(cat.Movies(), cat.ResolveDay(key))
    return c.JSON(http.StatusOK, viewOf(day))
}
