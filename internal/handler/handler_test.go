package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/cinema-showtimes/internal/booking"
    "github.com/iliyamo/cinema-showtimes/internal/catalog"
    "github.com/iliyamo/cinema-showtimes/internal/config"
    "github.com/iliyamo/cinema-showtimes/internal/model"
    "github.com/iliyamo/cinema-showtimes/internal/queue"
    "github.com/iliyamo/cinema-showtimes/internal/utils"
)

// 2026-10-16 is a Friday.
var friday = time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)

func clock() time.Time { return friday }

func fixture() []model.Movie {
    return []model.Movie{
        {ID: "a", Title: "The Quiet Shore", Genre: "drama", GenreLabel: "Drama", Rating: "R", Runtime: 124, Screen: 2,
            Showtimes: map[model.DayKey][]string{model.Fri: {"19:00"}, model.Sat: {"13:00"}}},
        {ID: "b", Title: "Rocket Pals", Genre: "family", GenreLabel: "Family", Rating: "PG", Runtime: 95,
            Showtimes: map[model.DayKey][]string{model.Fri: {"10:00", "12:30"}}},
        {ID: "c", Title: "Midnight Heist", Genre: "action", GenreLabel: "Action", Rating: "PG-13", Runtime: 110,
            Showtimes: map[model.DayKey][]string{model.Sat: {"22:00"}}},
    }
}

type sourceFunc func(ctx context.Context) (*catalog.Catalog, error)

func (f sourceFunc) Load(ctx context.Context) (*catalog.Catalog, error) { return f(ctx) }

type recordingPublisher struct {
    events []queue.BookingAcceptedEvent
    err    error
}

func (p *recordingPublisher) PublishBookingAccepted(_ context.Context, ev queue.BookingAcceptedEvent) error {
    p.events = append(p.events, ev)
    return p.err
}

func loadedStore(src catalog.Source) *catalog.Store {
    s := catalog.NewStore(src)
    s.Set(catalog.New(fixture(), catalog.WithClock(clock)))
    return s
}

func newServer(store *catalog.Store, pub *recordingPublisher, admin config.AdminConfig) *echo.Echo {
    e := echo.New()
    ch := NewCatalogHandler(store)
    bh := NewBookingHandler(store, pub)
    ah := NewAdminHandler(admin, config.CacheConfig{Prefix: "test"}, store, nil)

    e.GET("/healthz", Health(store))
    e.GET("/v1/movies", ch.ListMovies)
    e.GET("/v1/genres", ch.Genres)
    e.GET("/v1/schedule", ch.Schedule)
    e.GET("/v1/schedule/:day", ch.ScheduleDay)
    e.GET("/v1/booking/form", bh.Form)
    e.POST("/v1/booking/fields/:field", bh.Field)
    e.POST("/v1/bookings", bh.Submit)
    e.POST("/v1/admin/login", ah.Login)
    e.POST("/v1/admin/catalog/reload", ah.ReloadCatalog)
    return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
    t.Helper()
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type listResp struct {
    Day   string     `json:"day"`
    Items []movieItem `json:"items"`
    Total int        `json:"total"`
}

func titles(items []movieItem) []string {
    out := make([]string, 0, len(items))
    for _, it := range items {
        out = append(out, it.Title)
    }
    return out
}

func TestHealth(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})
    rec := do(t, e, http.MethodGet, "/healthz", "")
    require.Equal(t, http.StatusOK, rec.Code)
    require.Equal(t, "ok", rec.Body.String())
    require.Equal(t, "3", rec.Header().Get("X-Catalog-Movies"))
}

func TestListMoviesDefaults(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})
    rec := do(t, e, http.MethodGet, "/v1/movies", "")
    require.Equal(t, http.StatusOK, rec.Code)

    var body listResp
    decode(t, rec, &body)
    require.Equal(t, "fri", body.Day)
    require.Equal(t, 2, body.Total)
    require.Equal(t, []string{"Rocket Pals", "The Quiet Shore"}, titles(body.Items))

    rocket := body.Items[0]
    require.Equal(t, []string{"10:00", "12:30"}, rocket.Showtimes)
    require.Equal(t, "10:00, 12:30", rocket.ShowtimesText)
    require.Equal(t, "tickets.html?movie=Rocket%20Pals", rocket.BookingURL)
    require.Equal(t, 1, rocket.Screen)
}

func TestListMoviesQuery(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})

    var body listResp
    decode(t, do(t, e, http.MethodGet, "/v1/movies?day=sat&sort=runtime&order=desc", ""), &body)
    require.Equal(t, "sat", body.Day)
    require.Equal(t, []string{"The Quiet Shore", "Midnight Heist"}, titles(body.Items))

    body = listResp{}
    decode(t, do(t, e, http.MethodGet, "/v1/movies?genre=action&day=fri", ""), &body)
    require.Equal(t, 0, body.Total)
    require.NotNil(t, body.Items)
    require.Empty(t, body.Items)

    body = listResp{}
    decode(t, do(t, e, http.MethodGet, "/v1/movies?search=%20SHORE&day=bogus", ""), &body)
    require.Equal(t, "fri", body.Day)
    require.Equal(t, []string{"The Quiet Shore"}, titles(body.Items))
}

func TestAbsentCatalogIsEmpty(t *testing.T) {
    e := newServer(catalog.NewStore(nil), &recordingPublisher{}, config.AdminConfig{})

    var body listResp
    rec := do(t, e, http.MethodGet, "/v1/movies", "")
    require.Equal(t, http.StatusOK, rec.Code)
    decode(t, rec, &body)
    require.Equal(t, 0, body.Total)

    var genres struct {
        Items []catalog.Genre `json:"items"`
    }
    decode(t, do(t, e, http.MethodGet, "/v1/genres", ""), &genres)
    require.NotNil(t, genres.Items)
    require.Empty(t, genres.Items)

    var form struct {
        Movies []string `json:"movies"`
    }
    decode(t, do(t, e, http.MethodGet, "/v1/booking/form?movie=Rocket%20Pals", ""), &form)
    require.Empty(t, form.Movies)
}

func TestGenres(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})
    var body struct {
        All   string          `json:"all"`
        Items []catalog.Genre `json:"items"`
    }
    decode(t, do(t, e, http.MethodGet, "/v1/genres", ""), &body)
    require.Equal(t, "all", body.All)
    require.Equal(t, []catalog.Genre{
        {Key: "drama", Label: "Drama"},
        {Key: "family", Label: "Family"},
        {Key: "action", Label: "Action"},
    }, body.Items)
}

type dayResp struct {
    Day     string              `json:"day"`
    Label   string              `json:"label"`
    Heading string              `json:"heading"`
    Message string              `json:"message"`
    Entries []model.ScheduleRow `json:"entries"`
}

func TestSchedule(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})
    var body struct {
        DefaultDay string    `json:"default_day"`
        Days       []dayResp `json:"days"`
    }
    decode(t, do(t, e, http.MethodGet, "/v1/schedule", ""), &body)
    require.Equal(t, "fri", body.DefaultDay)
    require.Len(t, body.Days, 7)
    require.Equal(t, "mon", body.Days[0].Day)
    require.Equal(t, "sun", body.Days[6].Day)
    require.Equal(t, MsgNoSchedule, body.Days[6].Message)

    fri := body.Days[4]
    require.Equal(t, "Friday Showtimes", fri.Heading)
    require.Empty(t, fri.Message)
    require.Equal(t, []model.ScheduleRow{
        {MovieTitle: "Rocket Pals", Rating: "PG", Screen: 1, ScreenLabel: "Screen 1", Times: []string{"10:00", "12:30"}},
        {MovieTitle: "The Quiet Shore", Rating: "R", Screen: 2, ScreenLabel: "Screen 2", Times: []string{"19:00"}},
    }, fri.Entries)
}

func TestScheduleDay(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})

    var day dayResp
    decode(t, do(t, e, http.MethodGet, "/v1/schedule/today", ""), &day)
    require.Equal(t, "fri", day.Day)
    require.Len(t, day.Entries, 2)

    day = dayResp{}
    decode(t, do(t, e, http.MethodGet, "/v1/schedule/SUN", ""), &day)
    require.Equal(t, "sun", day.Day)
    require.NotNil(t, day.Entries)
    require.Empty(t, day.Entries)
    require.Equal(t, MsgNoSchedule, day.Message)

    rec := do(t, e, http.MethodGet, "/v1/schedule/funday", "")
    require.Equal(t, http.StatusNotFound, rec.Code)
    require.Contains(t, rec.Body.String(), "unknown_day")
}

type showtimesResp struct {
    Options     []string `json:"options"`
    Placeholder string   `json:"placeholder"`
    State       struct {
        Status string `json:"status"`
    } `json:"state"`
}

func TestBookingForm(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})

    var body struct {
        Movies    []string       `json:"movies"`
        Values    booking.Values `json:"values"`
        Prefilled bool           `json:"prefilled"`
        Showtimes showtimesResp  `json:"showtimes"`
        Fields    map[string]struct {
            Status string `json:"status"`
        } `json:"fields"`
    }
    decode(t, do(t, e, http.MethodGet, "/v1/booking/form?movie=Rocket%20Pals", ""), &body)
    require.Equal(t, []string{"The Quiet Shore", "Rocket Pals", "Midnight Heist"}, body.Movies)
    require.True(t, body.Prefilled)
    require.Equal(t, "Rocket Pals", body.Values.Movie)
    require.Equal(t, []string{"10:00", "12:30"}, body.Showtimes.Options)
    require.Len(t, body.Fields, 5)
    for name, st := range body.Fields {
        require.Equal(t, "pristine", st.Status, name)
    }

    body.Prefilled = true
    body.Values = booking.Values{}
    decode(t, do(t, e, http.MethodGet, "/v1/booking/form?movie=rocket%20pals", ""), &body)
    require.False(t, body.Prefilled)
    require.Empty(t, body.Values.Movie)
    require.Equal(t, booking.PlaceholderSelectShowtime, body.Showtimes.Placeholder)
}

func TestBookingField(t *testing.T) {
    e := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})

    var body struct {
        Field string `json:"field"`
        State struct {
            Status  string `json:"status"`
            Message string `json:"message"`
        } `json:"state"`
        Showtimes *showtimesResp `json:"showtimes"`
    }
    decode(t, do(t, e, http.MethodPost, "/v1/booking/fields/email", `{"value":"nope"}`), &body)
    require.Equal(t, "email", body.Field)
    require.Equal(t, "invalid", body.State.Status)
    require.Equal(t, booking.MsgEmailMissingAt, body.State.Message)
    require.Nil(t, body.Showtimes)

    body.Showtimes = nil
    decode(t, do(t, e, http.MethodPost, "/v1/booking/fields/movie", `{"value":"Midnight Heist"}`), &body)
    require.Equal(t, "valid", body.State.Status)
    require.NotNil(t, body.Showtimes)
    require.Equal(t, []string{"22:00"}, body.Showtimes.Options)
    require.Equal(t, "pristine", body.Showtimes.State.Status)

    body.Showtimes = nil
    decode(t, do(t, e, http.MethodPost, "/v1/booking/fields/movie", `{"value":"Unknown"}`), &body)
    require.Equal(t, booking.PlaceholderNoShowtimes, body.Showtimes.Placeholder)
    require.Empty(t, body.Showtimes.Options)

    rec := do(t, e, http.MethodPost, "/v1/booking/fields/seat", `{"value":"A1"}`)
    require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAccepted(t *testing.T) {
    pub := &recordingPublisher{}
    e := newServer(loadedStore(nil), pub, config.AdminConfig{})

    rec := do(t, e, http.MethodPost, "/v1/bookings",
        `{"name":"Ada Lovelace","email":"ada@example.com","movie":"Rocket Pals","showtime":"10:00","qty":"2"}`)
    require.Equal(t, http.StatusOK, rec.Code)

    var body struct {
        Status       string `json:"status"`
        Confirmation string `json:"confirmation"`
        Reference    string `json:"reference"`
    }
    decode(t, rec, &body)
    require.Equal(t, "accepted", body.Status)
    require.Equal(t, `Thank you, Ada Lovelace! Your booking for "Rocket Pals" at 10:00 for 2 ticket(s) has been submitted. A confirmation email will be sent to ada@example.com.`, body.Confirmation)
    _, err := uuid.Parse(body.Reference)
    require.NoError(t, err)

    require.Len(t, pub.events, 1)
    ev := pub.events[0]
    require.Equal(t, body.Reference, ev.Reference)
    require.Equal(t, "Rocket Pals", ev.MovieTitle)
    require.Equal(t, "2", ev.Quantity)
    require.Equal(t, body.Confirmation, ev.Confirmation)
}

func TestSubmitPublishFailureStillAccepts(t *testing.T) {
    pub := &recordingPublisher{err: errors.New("broker down")}
    e := newServer(loadedStore(nil), pub, config.AdminConfig{})
    rec := do(t, e, http.MethodPost, "/v1/bookings",
        `{"name":"Ada","email":"ada@example.com","movie":"Rocket Pals","showtime":"10:00","qty":"1"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    require.Len(t, pub.events, 1)
}

func TestSubmitRejected(t *testing.T) {
    pub := &recordingPublisher{}
    e := newServer(loadedStore(nil), pub, config.AdminConfig{})

    rec := do(t, e, http.MethodPost, "/v1/bookings", `{"name":"R2-D2","email":"a@b@c.d","movie":"Rocket Pals"}`)
    require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

    var body struct {
        Status string            `json:"status"`
        Errors map[string]string `json:"errors"`
    }
    decode(t, rec, &body)
    require.Equal(t, "rejected", body.Status)
    require.Equal(t, map[string]string{
        "name":     booking.MsgNameCharacters,
        "email":    booking.MsgEmailInvalid,
        "showtime": booking.MsgShowtimeRequired,
        "qty":      booking.MsgQtyRequired,
    }, body.Errors)
    require.Empty(t, pub.events)
}

func TestAdminLogin(t *testing.T) {
    hash, err := utils.HashPassword("letmein", bcrypt.MinCost)
    require.NoError(t, err)

    disabled := newServer(loadedStore(nil), &recordingPublisher{}, config.AdminConfig{})
    require.Equal(t, http.StatusServiceUnavailable, do(t, disabled, http.MethodPost, "/v1/admin/login", `{"password":"letmein"}`).Code)

    admin := config.AdminConfig{JWTSecret: "s3cret", TokenTTL: time.Minute, PasswordHash: hash}
    e := newServer(loadedStore(nil), &recordingPublisher{}, admin)
    require.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/v1/admin/login", `{"password":"wrong"}`).Code)
    require.Equal(t, http.StatusBadRequest, do(t, e, http.MethodPost, "/v1/admin/login", `{}`).Code)

    rec := do(t, e, http.MethodPost, "/v1/admin/login", `{"password":"letmein"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    var body struct {
        Access utils.AccessToken `json:"access"`
    }
    decode(t, rec, &body)
    _, role, err := utils.ParseToken("s3cret", body.Access.Token)
    require.NoError(t, err)
    require.Equal(t, utils.RoleAdmin, role)
}

func TestReloadCatalog(t *testing.T) {
    fail := false
    src := sourceFunc(func(context.Context) (*catalog.Catalog, error) {
        if fail {
            return nil, errors.New("source unavailable")
        }
        return catalog.New(fixture()[:1], catalog.WithClock(clock)), nil
    })
    store := loadedStore(src)
    e := newServer(store, &recordingPublisher{}, config.AdminConfig{})

    rec := do(t, e, http.MethodPost, "/v1/admin/catalog/reload", "")
    require.Equal(t, http.StatusOK, rec.Code)
    require.JSONEq(t, `{"movies":1,"purged":0}`, rec.Body.String())
    require.Equal(t, 1, store.Current().Len())

    fail = true
    rec = do(t, e, http.MethodPost, "/v1/admin/catalog/reload", "")
    require.Equal(t, http.StatusBadGateway, rec.Code)
    require.Equal(t, 1, store.Current().Len())
}
