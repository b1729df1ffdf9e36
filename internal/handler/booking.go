package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-showtimes/internal/booking"
    "github.com/iliyamo/cinema-showtimes/internal/catalog"
    "github.com/iliyamo/cinema-showtimes/internal/logger"
    "github.com/iliyamo/cinema-showtimes/internal/queue"
    "github.com/iliyamo/cinema-showtimes/internal/service"
)

// BookingHandler drives the ticket form.  Every request builds its own
// booking.Form, so no form state is shared between clients.
type BookingHandler struct {
    Store     *catalog.Store
    Publisher service.BookingPublisher
    Now       func() time.Time
}

func NewBookingHandler(store *catalog.Store, pub service.BookingPublisher) *BookingHandler {
    if pub == nil {
        pub = service.NopPublisher{}
    }
    return &BookingHandler{Store: store, Publisher: pub, Now: time.Now}
}

// ----- DTOs -----

type fieldReq struct {
    Value string `json:"value"`
    Movie string `json:"movie"`
}

type showtimeView struct {
    Options     []string           `json:"options"`
    Placeholder string             `json:"placeholder"`
    State       booking.FieldState `json:"state"`
}

func showtimesOf(f *booking.Form) showtimeView {
    return showtimeView{
        Options:     f.ShowtimeOptions(),
        Placeholder: f.ShowtimePlaceholder(),
        State:       f.State(booking.FieldShowtime),
    }
}

// Form returns the initial ticket form.  ?movie= preselects a movie when it
// matches a catalog title exactly.
func (h *BookingHandler) Form(c echo.Context) error {
    cat := h.Store.Current()
    form := booking.NewForm(cat)
    prefilled := form.Prefill(c.QueryParam("movie"))

    return c.JSON(http.StatusOK, echo.Map{
        "movies":    cat.Titles(),
        "values":    form.Values(),
        "prefilled": prefilled,
        "showtimes": showtimesOf(form),
        "fields":    form.States(),
    })
}

// Field validates a single field the way the page does on blur or change.
// Name and email commit on blur; the selects commit on change, and a movie
// change also rebuilds the showtime options.
func (h *BookingHandler) Field(c echo.Context) error {
    field, ok := booking.ParseField(c.Param("field"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown_field"})
    }
    var req fieldReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    form := booking.NewForm(h.Store.Current())
    var st booking.FieldState
    switch field {
    case booking.FieldName, booking.FieldEmail:
        form.Input(field, req.Value)
        st = form.Blur(field)
    case booking.FieldShowtime:
        if req.Movie != "" {
            form.Select(booking.FieldMovie, req.Movie)
        }
        st = form.Select(field, req.Value)
    default:
        st = form.Select(field, req.Value)
    }

    resp := echo.Map{"field": field, "state": st}
    if field == booking.FieldMovie || field == booking.FieldShowtime {
        resp["showtimes"] = showtimesOf(form)
    }
    return c.JSON(http.StatusOK, resp)
}

// Submit validates every field.  Accepted bookings get a reference and are
// announced to the broker; a publish failure does not fail the request.
func (h *BookingHandler) Submit(c echo.Context) error {
    var v booking.Values
    if err := c.Bind(&v); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    form := booking.NewForm(h.Store.Current())
    form.Input(booking.FieldName, v.Name)
    form.Input(booking.FieldEmail, v.Email)
    form.Select(booking.FieldMovie, v.Movie)
    form.Input(booking.FieldShowtime, v.Showtime)
    form.Input(booking.FieldQty, v.Qty)

    res := form.Submit()
    if !res.Accepted {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "status": "rejected",
            "errors": res.Errors,
        })
    }

    ref := uuid.NewString()
    ev := queue.BookingAcceptedEvent{
        Reference:    ref,
        Name:         res.Booking.Name,
        Email:        res.Booking.Email,
        MovieTitle:   res.Booking.Movie,
        Showtime:     res.Booking.Showtime,
        Quantity:     res.Booking.Qty,
        Confirmation: res.Confirmation,
        AcceptedAt:   h.Now().UTC(),
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
    defer cancel()
    if err := h.Publisher.PublishBookingAccepted(ctx, ev); err != nil {
        logger.Warn("booking: publish failed", "ref", ref, "err", err)
    }
    logger.Info("booking accepted", "ref", ref, "movie", ev.MovieTitle, "showtime", ev.Showtime, "qty", ev.Quantity)

    return c.JSON(http.StatusOK, echo.Map{
        "status":       "accepted",
        "confirmation": res.Confirmation,
        "reference":    ref,
    })
}
